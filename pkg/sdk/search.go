package searchable

import (
	"context"
	"fmt"

	searchuc "github.com/kailas-cloud/searchable/internal/usecase/search"
)

// SearchService runs keyword searches over one collection. Limit and Offset
// return modified copies, so a configured service can be reused.
type SearchService struct {
	collection string
	svc        searchUseCase
	colls      collectionUseCase
	obs        *observer
	limit      int
	offset     int
}

// Limit sets the page size. Zero uses the client default; values above the
// client maximum are clamped.
func (s *SearchService) Limit(n int) *SearchService {
	cp := *s
	cp.limit = n
	return &cp
}

// Offset skips the first n hits.
func (s *SearchService) Offset(n int) *SearchService {
	cp := *s
	cp.offset = n
	return &cp
}

// Query searches for phrase: a string split on whitespace or a []string whose
// entries may be multi-word. Tokens prefixed with "-" exclude matches. An
// empty phrase matches every record unscored. options are passed to the
// datastore as extra text-search directives.
func (s *SearchService) Query(ctx context.Context, phrase any, options map[string]any) (resp SearchResponse, err error) {
	done := s.obs.track("search", s.collection)
	defer func() { done(err) }()

	col, err := s.colls.Get(ctx, s.collection)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	r, err := s.svc.Search(ctx, s.collection, searchuc.Request{
		Phrase:  phrase,
		Options: options,
		Limit:   s.limit,
		Offset:  s.offset,
	})
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, len(r.Results))
	for i := range r.Results {
		hits[i] = fromInternalResult(col, &r.Results[i])
	}
	return SearchResponse{
		Filter: fromInternalFilter(r.Filter),
		Hits:   hits,
		Total:  r.Total,
	}, nil
}
