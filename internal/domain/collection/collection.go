package collection

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/kailas-cloud/searchable/internal/domain/keyword"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	// DefaultKeywordField is the record attribute that stores keywords.
	DefaultKeywordField = "keywords"
	// DefaultLanguage is the text-search language used when none is configured.
	DefaultLanguage = "english"
	// LanguageNone disables language-specific stemming and stop words.
	LanguageNone = "none"
)

// supportedLanguages are the search languages every backend understands.
var supportedLanguages = map[string]struct{}{
	"english":    {},
	"french":     {},
	"german":     {},
	"spanish":    {},
	"italian":    {},
	"portuguese": {},
	LanguageNone: {},
}

// IsSupportedLanguage reports whether lang can be used as a search language.
func IsSupportedLanguage(lang string) bool {
	_, ok := supportedLanguages[lang]
	return ok
}

// SupportedLanguages returns the sorted list of search languages.
func SupportedLanguages() []string {
	out := make([]string, 0, len(supportedLanguages))
	for l := range supportedLanguages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Collection is the immutable keyword configuration of one record type:
// which attributes feed extraction, where keywords are stored, which terms
// are never kept and which language search runs in.
type Collection struct {
	name         string
	keywordField string
	fields       []string
	blacklist    keyword.Blacklist
	language     string
}

// New validates and creates a Collection.
// Name: ^[a-zA-Z0-9_-]+$, 1-64 chars. Empty keywordField and language fall back to defaults.
func New(name, keywordField string, fields, blacklist []string, language string) (Collection, error) {
	if err := validateName(name); err != nil {
		return Collection{}, err
	}
	if keywordField == "" {
		keywordField = DefaultKeywordField
	}
	if language == "" {
		language = DefaultLanguage
	}
	if !IsSupportedLanguage(language) {
		return Collection{}, fmt.Errorf("unsupported language %q", language)
	}

	deduped := dedupFields(fields)
	for _, f := range deduped {
		if f == "" {
			return Collection{}, fmt.Errorf("field name must not be empty")
		}
		if f == keywordField {
			return Collection{}, fmt.Errorf("keyword field %q cannot be a source field", keywordField)
		}
	}

	return Collection{
		name:         name,
		keywordField: keywordField,
		fields:       deduped,
		blacklist:    keyword.NewBlacklist(blacklist...),
		language:     language,
	}, nil
}

// Reconstruct creates a Collection without validation (config hydration).
func Reconstruct(name, keywordField string, fields, blacklist []string, language string) Collection {
	if keywordField == "" {
		keywordField = DefaultKeywordField
	}
	if language == "" {
		language = DefaultLanguage
	}
	return Collection{
		name:         name,
		keywordField: keywordField,
		fields:       dedupFields(fields),
		blacklist:    keyword.NewBlacklist(blacklist...),
		language:     language,
	}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(name) > 64 {
		return fmt.Errorf("collection name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("collection name must be alphanumeric with underscores and hyphens")
	}
	return nil
}

func dedupFields(fields []string) []string {
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// KeywordField returns the attribute the keyword set is stored in.
func (c Collection) KeywordField() string { return c.keywordField }

// Fields returns a copy of the source field names, in configured order.
func (c Collection) Fields() []string {
	out := make([]string, len(c.fields))
	copy(out, c.fields)
	return out
}

// Blacklist returns the normalized blacklist.
func (c Collection) Blacklist() keyword.Blacklist { return c.blacklist }

// Language returns the search language.
func (c Collection) Language() string { return c.language }

// IsSourceField reports whether name feeds keyword extraction.
func (c Collection) IsSourceField(name string) bool {
	for _, f := range c.fields {
		if f == name {
			return true
		}
	}
	return false
}
