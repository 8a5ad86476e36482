package search

import (
	"strings"

	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
)

// Build turns a user phrase into a SearchFilter for col.
//
// phrase may be nil, a string or a list of strings; a list is joined with
// spaces. The text is split on whitespace and normalized with the collection
// blacklist. Options are merged as {language: col.Language()} overridden by
// options, with the normalized search text always winning. A leading "-" on
// a token is kept and marks an excluded term.
func Build(col collection.Collection, phrase any, options map[string]any) filter.SearchFilter {
	tokens := strings.Fields(strings.Join(keyword.Terms(phrase), " "))
	text := keyword.Normalize(tokens, col.Blacklist()).Join(" ")

	merged := make(map[string]any, len(options)+2)
	merged[filter.OptionLanguage] = col.Language()
	for k, v := range options {
		merged[k] = v
	}
	merged[filter.OptionSearch] = text

	return filter.New(merged)
}
