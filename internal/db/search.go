package db

import "github.com/kailas-cloud/searchable/internal/domain/search/filter"

// TextQuery is the input for a full-text search over one text attribute.
// An empty filter text selects every document, unscored.
type TextQuery struct {
	IndexName string
	Field     string
	Filter    filter.SearchFilter
	Offset    int
	Limit     int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Document holds the raw JSON document.
type SearchEntry struct {
	Key      string
	Score    float64
	Document []byte
}
