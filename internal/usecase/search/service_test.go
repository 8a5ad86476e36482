package search

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	"github.com/kailas-cloud/searchable/internal/domain/search/result"
	"github.com/kailas-cloud/searchable/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterExtractionMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockRepo struct {
	results      []result.Result
	total        int
	err          error
	textSearchOK bool
	called       bool
	lastFilter   filter.SearchFilter
	lastOffset   int
	lastLimit    int
}

func (m *mockRepo) Search(
	_ context.Context, _ collection.Collection, f filter.SearchFilter, offset, limit int,
) ([]result.Result, int, error) {
	m.called = true
	m.lastFilter, m.lastOffset, m.lastLimit = f, offset, limit
	return m.results, m.total, m.err
}

func (m *mockRepo) SupportsTextSearch(_ context.Context) bool { return m.textSearchOK }

type mockColls struct {
	col collection.Collection
	err error
}

func (m *mockColls) Get(_ context.Context, _ string) (collection.Collection, error) {
	return m.col, m.err
}

func booksColls() *mockColls {
	return &mockColls{col: collection.Reconstruct("books", "", []string{"title"}, []string{"the"}, "")}
}

// --- Tests ---

func TestSearch_HappyPath(t *testing.T) {
	repo := &mockRepo{
		textSearchOK: true,
		total:        1,
		results:      []result.Result{result.New("b1", 1.5, map[string]any{}, keyword.Of("whale"))},
	}
	svc := New(repo, booksColls(), nil)

	resp, err := svc.Search(context.Background(), "books", Request{Phrase: "The Whale", Limit: 5, Offset: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Filter.SearchText() != "whale" || !resp.Filter.SortByRelevance() {
		t.Errorf("filter = %v", resp.Filter.Map())
	}
	if repo.lastFilter.Language() != "english" {
		t.Errorf("language = %q", repo.lastFilter.Language())
	}
	if repo.lastOffset != 10 || repo.lastLimit != 5 {
		t.Errorf("page = %d/%d", repo.lastOffset, repo.lastLimit)
	}
	if resp.Total != 1 || len(resp.Results) != 1 || resp.Results[0].ID() != "b1" {
		t.Errorf("response = %+v", resp)
	}
}

func TestSearch_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 20, 0},
		{"clamped", 500, -3, 100, 0},
		{"explicit", 7, 3, 7, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{textSearchOK: true}
			svc := New(repo, booksColls(), nil)
			if _, err := svc.Search(context.Background(), "books", Request{Limit: tc.limit, Offset: tc.offset}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastLimit != tc.wantLimit || repo.lastOffset != tc.wantOffset {
				t.Errorf("page = %d/%d, want %d/%d", repo.lastOffset, repo.lastLimit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestSearch_WithPagination(t *testing.T) {
	repo := &mockRepo{textSearchOK: true}
	svc := New(repo, booksColls(), nil).WithPagination(5, 10)

	if _, err := svc.Search(context.Background(), "books", Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 5 {
		t.Errorf("default limit = %d, want 5", repo.lastLimit)
	}
	if _, err := svc.Search(context.Background(), "books", Request{Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 10 {
		t.Errorf("max limit = %d, want 10", repo.lastLimit)
	}
}

func TestSearch_MatchAll(t *testing.T) {
	repo := &mockRepo{textSearchOK: true}
	svc := New(repo, booksColls(), nil)

	resp, err := svc.Search(context.Background(), "books", Request{Phrase: nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Filter.MatchAll() || resp.Filter.SortByRelevance() {
		t.Errorf("expected unscored match-all filter, got %v", resp.Filter.Map())
	}
}

func TestSearch_Errors(t *testing.T) {
	t.Run("collection not found", func(t *testing.T) {
		svc := New(&mockRepo{textSearchOK: true}, &mockColls{err: domain.ErrNotFound}, nil)
		_, err := svc.Search(context.Background(), "missing", Request{})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("text search unsupported", func(t *testing.T) {
		repo := &mockRepo{}
		svc := New(repo, booksColls(), nil)
		_, err := svc.Search(context.Background(), "books", Request{Phrase: "x"})
		if !errors.Is(err, domain.ErrTextSearchNotSupported) {
			t.Fatalf("expected ErrTextSearchNotSupported, got %v", err)
		}
		if repo.called {
			t.Error("repository must not be called")
		}
	})

	t.Run("repository error", func(t *testing.T) {
		cause := errors.New("connection lost")
		svc := New(&mockRepo{textSearchOK: true, err: cause}, booksColls(), nil)
		_, err := svc.Search(context.Background(), "books", Request{Phrase: "x"})
		if !errors.Is(err, cause) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	})
}

func TestService_Build(t *testing.T) {
	svc := New(&mockRepo{}, booksColls(), nil)
	f, err := svc.Build(context.Background(), "books", []string{"Moby", "Dick"}, map[string]any{"slop": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.SearchText() != "moby dick" {
		t.Errorf("SearchText = %q", f.SearchText())
	}
	if v, ok := f.Option("slop"); !ok || v != 1 {
		t.Errorf("slop option = %v, %v", v, ok)
	}

	svc = New(&mockRepo{}, &mockColls{err: domain.ErrNotFound}, nil)
	if _, err := svc.Build(context.Background(), "missing", "x", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
