package searchable

import (
	"context"

	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	collectionuc "github.com/kailas-cloud/searchable/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/searchable/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchable/internal/usecase/search"
)

// --- collectionUseCase mock ---

type mockCollectionUC struct {
	registerFn func(ctx context.Context, def collectionuc.Definition) (domcol.Collection, error)
	getFn      func(ctx context.Context, name string) (domcol.Collection, error)
	listFn     func(ctx context.Context) ([]domcol.Collection, error)
}

func (m *mockCollectionUC) Register(ctx context.Context, def collectionuc.Definition) (domcol.Collection, error) {
	return m.registerFn(ctx, def)
}

func (m *mockCollectionUC) Get(ctx context.Context, name string) (domcol.Collection, error) {
	if m.getFn == nil {
		return domcol.Reconstruct(name, "", []string{"title"}, nil, ""), nil
	}
	return m.getFn(ctx, name)
}

func (m *mockCollectionUC) List(ctx context.Context) ([]domcol.Collection, error) {
	return m.listFn(ctx)
}

// --- recordUseCase mock ---

type mockRecordUC struct {
	putFn    func(ctx context.Context, col, id string, attrs map[string]any, explicit any) (*domrec.Document, bool, error)
	getFn    func(ctx context.Context, col, id string) (*domrec.Document, error)
	deleteFn func(ctx context.Context, col, id string) error
	addFn    func(ctx context.Context, col, id string, keywords any) (*domrec.Document, error)
	removeFn func(ctx context.Context, col, id string, keywords any) (*domrec.Document, error)
}

func (m *mockRecordUC) Put(
	ctx context.Context, col, id string, attrs map[string]any, explicit any,
) (*domrec.Document, bool, error) {
	return m.putFn(ctx, col, id, attrs, explicit)
}

func (m *mockRecordUC) Get(ctx context.Context, col, id string) (*domrec.Document, error) {
	return m.getFn(ctx, col, id)
}

func (m *mockRecordUC) Delete(ctx context.Context, col, id string) error {
	return m.deleteFn(ctx, col, id)
}

func (m *mockRecordUC) AddKeywords(ctx context.Context, col, id string, keywords any) (*domrec.Document, error) {
	return m.addFn(ctx, col, id, keywords)
}

func (m *mockRecordUC) RemoveKeywords(ctx context.Context, col, id string, keywords any) (*domrec.Document, error) {
	return m.removeFn(ctx, col, id, keywords)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	buildFn  func(ctx context.Context, col string, phrase any, options map[string]any) (filter.SearchFilter, error)
	searchFn func(ctx context.Context, col string, req searchuc.Request) (searchuc.Response, error)
}

func (m *mockSearchUC) Build(
	ctx context.Context, col string, phrase any, options map[string]any,
) (filter.SearchFilter, error) {
	return m.buildFn(ctx, col, phrase, options)
}

func (m *mockSearchUC) Search(ctx context.Context, col string, req searchuc.Request) (searchuc.Response, error) {
	return m.searchFn(ctx, col, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
