package searchable

import (
	"fmt"
	"reflect"
	"strings"
)

const tagKey = "searchable"

// DiscoverFields lists the source fields of a struct: every exported string
// or []string field, named by its `searchable:"name"` tag or, without a tag,
// by the lower-cased Go field name. `searchable:"-"` skips a field and
// `searchable:"name,nokeywords"` maps it without feeding extraction.
// v may be a struct, a pointer to one, or a reflect.Type.
func DiscoverFields(v any) ([]string, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return nil, fmt.Errorf("searchable: cannot discover fields of nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("searchable: type %s is not a struct", t)
	}

	var fields []string
	seen := make(map[string]string)
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || !isTextField(f.Type) {
			continue
		}
		name, keep, err := parseFieldTag(f)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("searchable: fields %s and %s both map to %q", prev, f.Name, name)
		}
		seen[name] = f.Name
		fields = append(fields, name)
	}
	return fields, nil
}

// parseFieldTag returns the attribute name and whether the field feeds extraction.
func parseFieldTag(f reflect.StructField) (string, bool, error) {
	tag := f.Tag.Get(tagKey)
	if tag == "-" {
		return "", false, nil
	}
	name, modifier, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	switch modifier {
	case "":
		return name, true, nil
	case "nokeywords":
		return name, false, nil
	default:
		return "", false, fmt.Errorf("searchable: unknown modifier %q on field %s", modifier, f.Name)
	}
}

func isTextField(t reflect.Type) bool {
	if t.Kind() == reflect.String {
		return true
	}
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String
}
