package keyword

import (
	"fmt"
	"reflect"
	"strings"
)

// Terms coerces caller-supplied keywords into a token sequence.
// A bare string is split on whitespace, a list is taken element by element,
// nil becomes empty. Non-string list elements are dropped.
func Terms(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return strings.Fields(t)
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case Set:
		return t.Slice()
	default:
		return nil
	}
}

// Removal coerces keywords to remove. Unlike Terms, a bare string is kept
// whole so a stored multi-word keyword can be dropped by name.
func Removal(v any) []string {
	if t, ok := v.(string); ok {
		return []string{t}
	}
	return Terms(v)
}

// FieldText turns a record attribute value into one text blob: a scalar is
// a single-element sequence, a list keeps its elements, and the elements are
// joined with a single space. ok is false when the value is absent or empty
// and no extraction should be scheduled for it.
func FieldText(v any) (text string, ok bool) {
	values := fieldValues(v)
	if len(values) == 0 {
		return "", false
	}
	text = strings.Join(values, " ")
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func fieldValues(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := scalarText(e); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := scalarText(t); ok {
			return []string{s}
		}
		return nil
	}
}

// scalarText renders a non-empty scalar. Zero values (0, false, "") count as empty.
func scalarText(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, s != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if rv.IsZero() {
			return "", false
		}
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}
