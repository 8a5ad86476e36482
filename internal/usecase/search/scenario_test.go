package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/searchable/internal/db/memory"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/extractor/term"
	colrepo "github.com/kailas-cloud/searchable/internal/repository/collection"
	recrepo "github.com/kailas-cloud/searchable/internal/repository/record"
	searchrepo "github.com/kailas-cloud/searchable/internal/repository/search"
	"github.com/kailas-cloud/searchable/internal/usecase/extraction"
	"github.com/kailas-cloud/searchable/internal/usecase/keyword"
	recuc "github.com/kailas-cloud/searchable/internal/usecase/record"
	"github.com/kailas-cloud/searchable/internal/usecase/search"
)

type stack struct {
	records *recuc.Service
	search  *search.Service
}

func newStack(t *testing.T, col domcol.Collection) *stack {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	t.Cleanup(store.Close)

	colls := colrepo.New(store, "")
	if err := colls.Register(ctx, col); err != nil {
		t.Fatalf("register collection: %v", err)
	}

	ext, err := term.New(term.Config{})
	if err != nil {
		t.Fatalf("term.New: %v", err)
	}
	collector := extraction.NewCollector(
		extraction.NewAdapter(ext, ext.Name(), nil),
		extraction.CollectorConfig{},
	)
	kw := keyword.New(collector, 5*time.Second, nil)

	return &stack{
		records: recuc.New(recrepo.New(store, ""), colls, kw, nil),
		search:  search.New(searchrepo.New(store, ""), colls, nil),
	}
}

func (s *stack) save(t *testing.T, collection, id string, attrs map[string]any) {
	t.Helper()
	rec, err := domrec.New(id, attrs)
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	if _, err := s.records.Save(context.Background(), collection, rec, nil); err != nil {
		t.Fatalf("save %s: %v", id, err)
	}
}

func (s *stack) query(t *testing.T, collection string, phrase any) search.Response {
	t.Helper()
	resp, err := s.search.Search(context.Background(), collection, search.Request{Phrase: phrase})
	if err != nil {
		t.Fatalf("search %v: %v", phrase, err)
	}
	return resp
}

func ids(resp search.Response) []string {
	out := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, r.ID())
	}
	return out
}

func assertDescending(t *testing.T, resp search.Response) {
	t.Helper()
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i-1].Score() < resp.Results[i].Score() {
			t.Errorf("scores not descending at %d: %v < %v",
				i, resp.Results[i-1].Score(), resp.Results[i].Score())
		}
	}
}

func TestScenario_AuthorsShareTerms(t *testing.T) {
	col, err := domcol.New("books", "", []string{"authors"}, nil, "")
	if err != nil {
		t.Fatalf("collection.New: %v", err)
	}
	s := newStack(t, col)

	s.save(t, "books", "both", map[string]any{"authors": []string{"John Doe", "Jane Roe"}})
	s.save(t, "books", "john", map[string]any{"authors": []string{"John Smith"}})
	s.save(t, "books", "other", map[string]any{"authors": []string{"Mark Twain"}})

	resp := s.query(t, "books", []string{"John Doe", "Jane Roe"})

	got := ids(resp)
	if len(got) != 2 || got[0] != "both" || got[1] != "john" {
		t.Fatalf("hits = %v, want [both john]", got)
	}
	if !resp.Filter.SortByRelevance() {
		t.Error("expected relevance sort")
	}
	assertDescending(t, resp)
	if !resp.Results[0].Keywords().Contains("john doe") {
		t.Errorf("keywords = %q", resp.Results[0].Keywords().Slice())
	}
}

func TestScenario_ExactTitleFirst(t *testing.T) {
	col, err := domcol.New("books", "", []string{"title"}, nil, "")
	if err != nil {
		t.Fatalf("collection.New: %v", err)
	}
	s := newStack(t, col)

	s.save(t, "books", "exact", map[string]any{"title": "Moby Dick"})
	s.save(t, "books", "longer", map[string]any{"title": "Moby Dick and the Sea Wolf"})
	s.save(t, "books", "partial", map[string]any{"title": "Dick Tracy"})
	s.save(t, "books", "none", map[string]any{"title": "War and Peace"})

	resp := s.query(t, "books", "Moby Dick")

	got := ids(resp)
	if len(got) != 3 {
		t.Fatalf("hits = %v, want 3 matches", got)
	}
	if got[0] != "exact" {
		t.Errorf("first hit = %s, want exact", got[0])
	}
	if got[2] != "partial" {
		t.Errorf("last hit = %s, want partial", got[2])
	}
	assertDescending(t, resp)
}

func TestScenario_NegatedTermExcludes(t *testing.T) {
	col, err := domcol.New("books", "", []string{"title"}, nil, "")
	if err != nil {
		t.Fatalf("collection.New: %v", err)
	}
	s := newStack(t, col)

	s.save(t, "books", "plain", map[string]any{"title": "Moby Dick"})
	s.save(t, "books", "sea", map[string]any{"title": "Moby Dick and the Sea Wolf"})

	resp := s.query(t, "books", "Moby -Sea")

	if resp.Filter.SearchText() != "moby -sea" {
		t.Errorf("negated token not passed through: %q", resp.Filter.SearchText())
	}
	if got := ids(resp); len(got) != 1 || got[0] != "plain" {
		t.Errorf("hits = %v, want [plain]", got)
	}
}

func TestScenario_EmptyPhraseMatchesAllUnscored(t *testing.T) {
	col, err := domcol.New("books", "", []string{"title"}, nil, "")
	if err != nil {
		t.Fatalf("collection.New: %v", err)
	}
	s := newStack(t, col)

	s.save(t, "books", "a", map[string]any{"title": "Moby Dick"})
	s.save(t, "books", "b", map[string]any{})

	resp := s.query(t, "books", nil)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	for _, r := range resp.Results {
		if r.Score() != 0 {
			t.Errorf("%s scored %v on match-all", r.ID(), r.Score())
		}
	}
}

func TestScenario_UnkeywordizeRemovesFromSearch(t *testing.T) {
	col, err := domcol.New("books", "", []string{"title"}, nil, "")
	if err != nil {
		t.Fatalf("collection.New: %v", err)
	}
	s := newStack(t, col)
	ctx := context.Background()

	s.save(t, "books", "b1", map[string]any{"title": "Moby Dick"})
	if _, err := s.records.AddKeywords(ctx, "books", "b1", []string{"classic"}); err != nil {
		t.Fatalf("AddKeywords: %v", err)
	}
	if got := ids(s.query(t, "books", "classic")); len(got) != 1 {
		t.Fatalf("hits after add = %v", got)
	}

	if _, err := s.records.RemoveKeywords(ctx, "books", "b1", "classic"); err != nil {
		t.Fatalf("RemoveKeywords: %v", err)
	}
	if got := ids(s.query(t, "books", "classic")); len(got) != 0 {
		t.Errorf("hits after remove = %v", got)
	}
}
