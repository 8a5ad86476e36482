package record

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/kailas-cloud/searchable/internal/domain/keyword"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Record is the attribute access a keyword operation needs from a stored entity.
type Record interface {
	Get(field string) any
	Set(field string, value any)
	IsModified(field string) bool
	IsNew() bool
}

// Document is a Record backed by an attribute map with dirty tracking.
type Document struct {
	id       string
	attrs    map[string]any
	modified map[string]struct{}
	isNew    bool
}

var _ Record = (*Document)(nil)

// New validates and creates a record that has never been persisted.
// Every supplied attribute counts as modified.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars.
func New(id string, attrs map[string]any) (*Document, error) {
	if id == "" {
		return nil, fmt.Errorf("record ID is required")
	}
	if len(id) > 256 {
		return nil, fmt.Errorf("record ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return nil, fmt.Errorf("record ID must be alphanumeric with underscores and hyphens")
	}

	d := &Document{
		id:       id,
		attrs:    cloneAttrs(attrs),
		modified: make(map[string]struct{}, len(attrs)),
		isNew:    true,
	}
	for k := range d.attrs {
		d.modified[k] = struct{}{}
	}
	return d, nil
}

// Reconstruct creates a persisted record without validation (storage hydration).
func Reconstruct(id string, attrs map[string]any) *Document {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &Document{
		id:       id,
		attrs:    attrs,
		modified: make(map[string]struct{}),
	}
}

// ID returns the record identifier.
func (d *Document) ID() string { return d.id }

// Get returns the attribute value, or nil when absent.
func (d *Document) Get(field string) any { return d.attrs[field] }

// Set assigns an attribute and marks it modified when the value changes.
func (d *Document) Set(field string, value any) {
	if old, ok := d.attrs[field]; ok && reflect.DeepEqual(old, value) {
		return
	}
	d.attrs[field] = value
	d.modified[field] = struct{}{}
}

// IsModified reports whether the attribute changed since load.
func (d *Document) IsModified(field string) bool {
	_, ok := d.modified[field]
	return ok
}

// IsNew reports whether the record has never been persisted.
func (d *Document) IsNew() bool { return d.isNew }

// Attributes returns a shallow copy of all attributes.
func (d *Document) Attributes() map[string]any { return cloneAttrs(d.attrs) }

// MarkPersisted clears the new flag and the dirty set after a successful save.
func (d *Document) MarkPersisted() {
	d.isNew = false
	d.modified = make(map[string]struct{})
}

// Keywords reads the keyword set stored under field. A bare string counts as
// one keyword; anything else goes through keyword.Terms. Values are normalized.
func Keywords(r Record, field string, blacklist keyword.Blacklist) keyword.Set {
	switch v := r.Get(field).(type) {
	case keyword.Set:
		return keyword.Normalize(v.Slice(), blacklist)
	case string:
		return keyword.Normalize([]string{v}, blacklist)
	default:
		return keyword.Normalize(keyword.Terms(v), blacklist)
	}
}

func cloneAttrs(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
