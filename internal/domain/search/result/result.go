package result

import "github.com/kailas-cloud/searchable/internal/domain/keyword"

// Result is a single search hit.
type Result struct {
	id         string
	score      float64
	attributes map[string]any
	keywords   keyword.Set
}

// New creates a search result. Score is zero for unscored (match-all) hits.
func New(id string, score float64, attributes map[string]any, keywords keyword.Set) Result {
	return Result{id: id, score: score, attributes: attributes, keywords: keywords}
}

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Attributes returns the stored record attributes.
func (r *Result) Attributes() map[string]any { return r.attributes }

// Keywords returns the stored keyword set.
func (r *Result) Keywords() keyword.Set { return r.keywords }
