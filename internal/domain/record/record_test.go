package record

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/searchable/internal/domain/keyword"
)

func TestNew_Valid(t *testing.T) {
	attrs := map[string]any{"title": "Moby Dick"}

	doc, err := New("book-1", attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "book-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if !doc.IsNew() {
		t.Error("new record must report IsNew")
	}
	if !doc.IsModified("title") {
		t.Error("supplied attributes must count as modified")
	}
	if doc.Get("missing") != nil {
		t.Error("absent attribute must be nil")
	}

	attrs["title"] = "mutated"
	if doc.Get("title") != "Moby Dick" {
		t.Error("attribute map mutation leaked into record")
	}
}

func TestNew_InvalidID(t *testing.T) {
	tests := []struct {
		id      string
		wantSub string
	}{
		{"", "required"},
		{strings.Repeat("x", 257), "too long"},
		{"has space", "alphanumeric"},
		{"slash/id", "alphanumeric"},
	}
	for _, tc := range tests {
		_, err := New(tc.id, nil)
		if err == nil {
			t.Errorf("New(%q): expected error", tc.id)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantSub) {
			t.Errorf("New(%q): error %q does not contain %q", tc.id, err, tc.wantSub)
		}
	}
}

func TestSet_TracksChanges(t *testing.T) {
	doc := Reconstruct("book-1", map[string]any{"title": "Moby Dick"})
	if doc.IsNew() {
		t.Error("reconstructed record must not be new")
	}

	doc.Set("title", "Moby Dick")
	if doc.IsModified("title") {
		t.Error("setting an equal value must not mark modified")
	}

	doc.Set("title", "Moby-Dick; or, The Whale")
	if !doc.IsModified("title") {
		t.Error("changed value must mark modified")
	}

	doc.Set("authors", []string{"Herman Melville"})
	if !doc.IsModified("authors") {
		t.Error("new attribute must mark modified")
	}

	doc.MarkPersisted()
	if doc.IsModified("title") || doc.IsModified("authors") || doc.IsNew() {
		t.Error("MarkPersisted must clear dirty state")
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"absent", nil, []string{}},
		{"string slice", []string{"Go", "go", "rust"}, []string{"go", "rust"}},
		{"decoded json", []any{"a", 1, "b"}, []string{"a", "b"}},
		{"bare string is one keyword", "John Doe", []string{"john doe"}},
		{"set", keyword.Of("x", "y"), []string{"x", "y"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := Reconstruct("r", map[string]any{"keywords": tc.value})
			got := Keywords(doc, "keywords", nil).Slice()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Keywords = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKeywords_Blacklist(t *testing.T) {
	doc := Reconstruct("r", map[string]any{"keywords": []string{"the", "whale"}})
	got := Keywords(doc, "keywords", keyword.NewBlacklist("the")).Slice()
	if !reflect.DeepEqual(got, []string{"whale"}) {
		t.Errorf("Keywords = %q, want [whale]", got)
	}
}
