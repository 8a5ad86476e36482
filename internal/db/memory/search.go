package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
)

// SearchText runs a bleve search over one index. Included terms are OR-ed,
// negated terms exclude documents, and hits are sorted by score when the
// filter asks for relevance. An empty filter text matches every document,
// unscored, ordered by key.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Field == "" {
		return nil, fmt.Errorf("field is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ti, ok := s.indexes[q.IndexName]
	if !ok {
		return nil, &db.Error{Op: db.OpSearch, Key: q.IndexName, Err: db.ErrIndexNotFound}
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q.Field, q.Filter), q.Limit, q.Offset, false)
	scored := q.Filter.SortByRelevance()
	if scored {
		req.SortBy([]string{"-_score", "_id"})
	} else {
		req.SortBy([]string{"_id"})
	}

	res, err := ti.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Key: q.IndexName, Err: err}
	}

	out := &db.SearchResult{
		Total:   int(res.Total),
		Entries: make([]db.SearchEntry, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		doc, ok := s.docs[hit.ID]
		if !ok {
			continue
		}
		entry := db.SearchEntry{Key: hit.ID, Document: append([]byte(nil), doc...)}
		if scored {
			entry.Score = hit.Score
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func buildQuery(field string, f filter.SearchFilter) query.Query {
	if f.MatchAll() {
		return bleve.NewMatchAllQuery()
	}

	included := f.Included()
	excluded := f.Excluded()
	fuzziness, _ := intOption(f, "fuzziness")

	bq := bleve.NewBooleanQuery()
	if len(included) > 0 {
		mq := bleve.NewMatchQuery(strings.Join(included, " "))
		mq.SetField(field)
		mq.SetFuzziness(fuzziness)
		bq.AddMust(mq)
	} else {
		bq.AddMust(bleve.NewMatchAllQuery())
	}
	if len(excluded) > 0 {
		nq := bleve.NewMatchQuery(strings.Join(excluded, " "))
		nq.SetField(field)
		bq.AddMustNot(nq)
	}
	return bq
}

func intOption(f filter.SearchFilter, key string) (int, bool) {
	v, ok := f.Option(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
