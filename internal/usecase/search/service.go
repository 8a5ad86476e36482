package search

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	"github.com/kailas-cloud/searchable/internal/domain/search/result"
	"github.com/kailas-cloud/searchable/internal/metrics"
)

// Request is one search call.
type Request struct {
	Phrase  any
	Options map[string]any
	Limit   int
	Offset  int
}

// Response carries the executed filter and one page of results.
type Response struct {
	Filter  filter.SearchFilter
	Results []result.Result
	Total   int
}

// Service handles keyword search over collections.
type Service struct {
	repo         Repository
	colls        CollectionReader
	logger       *zap.Logger
	defaultLimit int
	maxLimit     int
}

// New creates a search service.
func New(repo Repository, colls CollectionReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:         repo,
		colls:        colls,
		logger:       logger,
		defaultLimit: 20,
		maxLimit:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Build returns the filter a search of collectionName would execute.
func (s *Service) Build(
	ctx context.Context, collectionName string, phrase any, options map[string]any,
) (filter.SearchFilter, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return filter.SearchFilter{}, fmt.Errorf("get collection: %w", err)
	}
	return Build(col, phrase, options), nil
}

// Search builds the filter for req and executes it. Results are sorted by
// relevance when the search text is non-empty; otherwise every record
// matches and scores are zero.
func (s *Service) Search(ctx context.Context, collectionName string, req Request) (Response, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return Response{}, fmt.Errorf("get collection: %w", err)
	}

	if !s.repo.SupportsTextSearch(ctx) {
		return Response{}, domain.ErrTextSearchNotSupported
	}

	f := Build(col, req.Phrase, req.Options)
	limit := s.clampLimit(req.Limit)
	offset := max(req.Offset, 0)

	results, total, err := s.repo.Search(ctx, col, f, offset, limit)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(col.Name(), strconv.FormatBool(f.SortByRelevance())).Inc()
	s.logger.Debug("Search completed",
		zap.String("collection", col.Name()),
		zap.String("search", f.SearchText()),
		zap.Int("results", len(results)),
		zap.Int("total", total),
	)

	return Response{Filter: f, Results: results, Total: total}, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
