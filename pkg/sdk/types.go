package searchable

// CollectionInfo describes a registered collection.
type CollectionInfo struct {
	Name         string
	KeywordField string
	Fields       []string
	Blacklist    []string
	Language     string
}

// Record is a stored record. Attributes exclude the keyword field.
type Record struct {
	ID         string
	Attributes map[string]any
	Keywords   []string
}

// Filter is a built search: the normalized search text, the language and any
// extra datastore options, plus whether results are ranked.
type Filter struct {
	Search          string
	Language        string
	Options         map[string]any
	SortByRelevance bool
}

// Map renders the filter as {"textSearch": {...}, "sortByRelevance": bool}.
func (f Filter) Map() map[string]any {
	ts := make(map[string]any, len(f.Options)+2)
	for k, v := range f.Options {
		ts[k] = v
	}
	ts["language"] = f.Language
	ts["search"] = f.Search
	return map[string]any{
		"textSearch":      ts,
		"sortByRelevance": f.SortByRelevance,
	}
}

// Hit is a single search result.
type Hit struct {
	ID         string
	Score      float64
	Attributes map[string]any
	Keywords   []string
}

// SearchResponse is one page of hits and the filter that produced it.
type SearchResponse struct {
	Filter Filter
	Hits   []Hit
	Total  int
}
