package db

import (
	"errors"
	"fmt"
)

// LanguageNone disables stemming and stop words for an index.
const LanguageNone = "none"

// IndexField is one full-text attribute of an index schema. Every string
// reached by Path is indexed and queried under AttributeName.
type IndexField struct {
	Path  string // JSON path, e.g. $.keywords[*]
	Alias string // attribute name in queries; empty uses Path
}

// AttributeName is the name queries use for the field: the alias if set.
func (f *IndexField) AttributeName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Path
}

// IndexDefinition describes a full-text index over the JSON documents whose
// keys start with one of Prefixes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Language string // stemming and stop-word language, LanguageNone to disable
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]struct{}, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Path == "" {
			return fmt.Errorf("field %d: path is required", i)
		}
		name := f.AttributeName()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate field name: %s", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// IsValidIdentifier reports whether s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == ':', r == '-':
		default:
			return false
		}
	}
	return true
}
