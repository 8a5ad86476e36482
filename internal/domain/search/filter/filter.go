// Package filter holds the structured text-search filter a datastore executes.
package filter

import "strings"

const (
	// OptionSearch is the option key that carries the search text.
	OptionSearch = "search"
	// OptionLanguage is the option key that carries the search language.
	OptionLanguage = "language"
)

// SearchFilter describes one text search: the normalized search text, the
// search language, auxiliary datastore directives and whether results are
// ranked by relevance. An empty SearchText matches every record.
type SearchFilter struct {
	searchText      string
	language        string
	extraOptions    map[string]any
	sortByRelevance bool
}

// New creates a SearchFilter from merged search options. The "search" and
// "language" keys populate SearchText and Language; everything else is kept
// as extra options. Relevance sort is enabled iff the search text is non-empty.
func New(options map[string]any) SearchFilter {
	f := SearchFilter{extraOptions: make(map[string]any, len(options))}
	for k, v := range options {
		switch k {
		case OptionSearch:
			f.searchText, _ = v.(string)
		case OptionLanguage:
			f.language, _ = v.(string)
		default:
			f.extraOptions[k] = v
		}
	}
	f.sortByRelevance = f.searchText != ""
	return f
}

// SearchText returns the normalized search string ("" matches everything).
func (f SearchFilter) SearchText() string { return f.searchText }

// Language returns the search language.
func (f SearchFilter) Language() string { return f.language }

// ExtraOptions returns a copy of the auxiliary datastore directives.
func (f SearchFilter) ExtraOptions() map[string]any {
	out := make(map[string]any, len(f.extraOptions))
	for k, v := range f.extraOptions {
		out[k] = v
	}
	return out
}

// Option returns one auxiliary directive.
func (f SearchFilter) Option(key string) (any, bool) {
	v, ok := f.extraOptions[key]
	return v, ok
}

// SortByRelevance reports whether results are ranked by relevance, descending.
func (f SearchFilter) SortByRelevance() bool { return f.sortByRelevance }

// MatchAll reports whether the filter selects every record, unscored.
func (f SearchFilter) MatchAll() bool { return f.searchText == "" }

// Terms splits the search text into its tokens. Multi-word keywords are split
// into words; tokens keep a leading "-".
func (f SearchFilter) Terms() []string {
	return strings.Fields(f.searchText)
}

// Included returns the terms without a negation prefix.
func (f SearchFilter) Included() []string {
	inc, _ := f.partition()
	return inc
}

// Excluded returns the negated terms with the leading "-" removed.
func (f SearchFilter) Excluded() []string {
	_, exc := f.partition()
	return exc
}

func (f SearchFilter) partition() (included, excluded []string) {
	for _, t := range f.Terms() {
		if len(t) > 1 && t[0] == '-' {
			excluded = append(excluded, t[1:])
			continue
		}
		if t == "-" {
			continue
		}
		included = append(included, t)
	}
	return included, excluded
}

// Map renders the filter in the datastore-neutral shape
// {"textSearch": {"language": ..., "search": ..., extra...}, "sortByRelevance": bool}.
func (f SearchFilter) Map() map[string]any {
	ts := f.ExtraOptions()
	ts[OptionLanguage] = f.language
	ts[OptionSearch] = f.searchText
	return map[string]any{
		"textSearch":      ts,
		"sortByRelevance": f.sortByRelevance,
	}
}
