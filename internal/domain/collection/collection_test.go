package collection

import (
	"reflect"
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	col, err := New("books", "", []string{"title", "authors", "title"}, []string{"The"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if col.Name() != "books" {
		t.Errorf("Name() = %q, want books", col.Name())
	}
	if col.KeywordField() != DefaultKeywordField {
		t.Errorf("KeywordField() = %q, want %q", col.KeywordField(), DefaultKeywordField)
	}
	if col.Language() != DefaultLanguage {
		t.Errorf("Language() = %q, want %q", col.Language(), DefaultLanguage)
	}
	if got := col.Fields(); !reflect.DeepEqual(got, []string{"title", "authors"}) {
		t.Errorf("Fields() = %q, want deduplicated [title authors]", got)
	}
	if !col.Blacklist().Contains("the") {
		t.Error("expected blacklist to hold the normalized term")
	}
	if !col.IsSourceField("authors") || col.IsSourceField("keywords") {
		t.Error("IsSourceField mismatch")
	}
}

func TestNew_FieldsCopy(t *testing.T) {
	col, err := New("books", "tags", []string{"title"}, nil, "french")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := col.Fields()
	f[0] = "mutated"
	if col.Fields()[0] != "title" {
		t.Error("Fields() must return a copy")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		colName  string
		kwField  string
		fields   []string
		language string
		wantSub  string
	}{
		{"empty name", "", "", nil, "", "required"},
		{"bad name", "my books", "", nil, "", "alphanumeric"},
		{"long name", strings.Repeat("a", 65), "", nil, "", "too long"},
		{"unknown language", "books", "", nil, "klingon", "unsupported language"},
		{"keyword field is a source", "books", "kw", []string{"title", "kw"}, "", "cannot be a source field"},
		{"empty field name", "books", "", []string{""}, "", "must not be empty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.colName, tc.kwField, tc.fields, nil, tc.language)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not contain %q", err, tc.wantSub)
			}
		})
	}
}

func TestReconstruct_Defaults(t *testing.T) {
	col := Reconstruct("notes", "", nil, nil, "")
	if col.KeywordField() != DefaultKeywordField || col.Language() != DefaultLanguage {
		t.Errorf("defaults not applied: %q %q", col.KeywordField(), col.Language())
	}
	if len(col.Fields()) != 0 {
		t.Errorf("Fields() = %q, want empty", col.Fields())
	}
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	if len(langs) == 0 {
		t.Fatal("expected languages")
	}
	for _, l := range langs {
		if !IsSupportedLanguage(l) {
			t.Errorf("%q listed but not supported", l)
		}
	}
	if !IsSupportedLanguage(LanguageNone) {
		t.Error("none must be supported")
	}
}
