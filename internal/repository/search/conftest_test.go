package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/searchable/internal/db"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchTextFn         func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	supportsTextSearchFn func(ctx context.Context) bool
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SupportsTextSearch(ctx context.Context) bool {
	if m.supportsTextSearchFn != nil {
		return m.supportsTextSearchFn(ctx)
	}
	return false
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, ""), ms
}

func testCollection(t *testing.T) domcol.Collection {
	t.Helper()
	col, err := domcol.New("notes", "tags", []string{"title"}, nil, "")
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	return col
}
