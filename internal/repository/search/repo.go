package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	"github.com/kailas-cloud/searchable/internal/domain/search/result"
	recrepo "github.com/kailas-cloud/searchable/internal/repository/record"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SupportsTextSearch(ctx context.Context) bool
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a search repository. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// SupportsTextSearch proxies the capability check from the store.
func (r *Repo) SupportsTextSearch(ctx context.Context) bool {
	return r.store.SupportsTextSearch(ctx)
}

// Search executes f over the keyword attribute of col and returns one page of results.
func (r *Repo) Search(
	ctx context.Context, col collection.Collection,
	f filter.SearchFilter, offset, limit int,
) ([]result.Result, int, error) {
	q := &db.TextQuery{
		IndexName: domain.IndexName(r.prefix, col.Name()),
		Field:     col.KeywordField(),
		Filter:    f,
		Offset:    offset,
		Limit:     limit,
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", col.Name(), err)
	}

	results, err := parseResults(sr, domain.RecordKeyPrefix(r.prefix, col.Name()), col)
	if err != nil {
		return nil, 0, err
	}
	return results, sr.Total, nil
}

// parseResults converts db.SearchResult into []result.Result.
func parseResults(sr *db.SearchResult, prefix string, col collection.Collection) ([]result.Result, error) {
	if sr == nil || len(sr.Entries) == 0 {
		return []result.Result{}, nil
	}

	results := make([]result.Result, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		attrs := map[string]any{}
		if len(entry.Document) > 0 {
			decoded, err := recrepo.DecodeAttributes(entry.Document)
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", entry.Key, err)
			}
			attrs = decoded
		}
		kw := record.Keywords(record.Reconstruct(id, attrs), col.KeywordField(), nil)
		results = append(results, result.New(id, entry.Score, attrs, kw))
	}
	return results, nil
}
