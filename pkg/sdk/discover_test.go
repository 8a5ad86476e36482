package searchable

import (
	"reflect"
	"slices"
	"testing"
)

type article struct {
	Headline string   `searchable:"headline"`
	Body     string   // untagged, lower-cased
	Tags     []string `searchable:"tags"`
	Slug     string   `searchable:"slug,nokeywords"`
	Internal string   `searchable:"-"`
	Views    int
	draft    string //nolint:unused // unexported fields are ignored
}

func TestDiscoverFields(t *testing.T) {
	want := []string{"headline", "body", "tags"}

	tests := []struct {
		name string
		v    any
	}{
		{"value", article{}},
		{"pointer", &article{}},
		{"type", reflect.TypeOf(article{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiscoverFields(tt.v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, want) {
				t.Errorf("DiscoverFields() = %q, want %q", got, want)
			}
		})
	}
}

func TestDiscoverFields_Errors(t *testing.T) {
	type badModifier struct {
		Title string `searchable:"title,fuzzy"`
	}
	type duplicate struct {
		Title string `searchable:"name"`
		Name  string
	}

	tests := []struct {
		name string
		v    any
	}{
		{"nil", nil},
		{"not a struct", 42},
		{"pointer to non-struct", new(string)},
		{"unknown modifier", badModifier{}},
		{"duplicate name", duplicate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DiscoverFields(tt.v); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDiscoverFields_NoTextFields(t *testing.T) {
	type counters struct {
		Hits  int
		Ratio float64
	}

	got, err := DiscoverFields(counters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DiscoverFields() = %q, want none", got)
	}
}
