package collection

import (
	"context"
	"testing"

	"github.com/kailas-cloud/searchable/internal/db"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	created       []*db.IndexDefinition
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	m.created = append(m.created, def)
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, ""), ms
}

func testCollection(t *testing.T, name string) domcol.Collection {
	t.Helper()
	col, err := domcol.New(name, "tags", []string{"title"}, nil, "french")
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	return col
}
