package collection

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/searchable/internal/domain"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
)

// Definition is the unvalidated keyword configuration of a collection.
type Definition struct {
	Name         string
	KeywordField string
	Fields       []string
	Blacklist    []string
	Language     string
}

// Service handles collection registration and lookup.
type Service struct {
	repo Repository
}

// New creates a collection service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates def and makes the collection searchable.
func (s *Service) Register(ctx context.Context, def Definition) (domcol.Collection, error) {
	col, err := domcol.New(def.Name, def.KeywordField, def.Fields, def.Blacklist, def.Language)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("validate collection: %w: %w", domain.ErrInvalidCollection, err)
	}

	if err := s.repo.Register(ctx, col); err != nil {
		return domcol.Collection{}, fmt.Errorf("register collection %s: %w", col.Name(), err)
	}

	return col, nil
}

// Get retrieves a collection by name.
func (s *Service) Get(ctx context.Context, name string) (domcol.Collection, error) {
	col, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// List returns all collections.
func (s *Service) List(ctx context.Context) ([]domcol.Collection, error) {
	cols, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}
