package record

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
)

// Service handles record persistence with keyword maintenance.
type Service struct {
	repo     Repository
	colls    CollectionReader
	keywords Keywords
	logger   *zap.Logger
}

// New creates a record service.
func New(repo Repository, colls CollectionReader, keywords Keywords, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, colls: colls, keywords: keywords, logger: logger}
}

// Save persists rec. Keywords are refreshed first when the record is new or
// a source field changed; explicit keywords are merged in either way. If
// keyword extraction fails nothing is written.
// Returns true if the record was created.
func (s *Service) Save(ctx context.Context, collectionName string, rec *domrec.Document, explicit any) (bool, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return false, fmt.Errorf("get collection: %w", err)
	}
	return s.save(ctx, col, rec, explicit)
}

// Put creates the record id or overwrites the given attributes of the stored one.
// Attributes not mentioned keep their stored values.
func (s *Service) Put(
	ctx context.Context, collectionName, id string, attrs map[string]any, explicit any,
) (*domrec.Document, bool, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return nil, false, fmt.Errorf("get collection: %w", err)
	}

	rec, err := s.repo.Get(ctx, col, id)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		rec, err = domrec.New(id, attrs)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
		}
	case err != nil:
		return nil, false, fmt.Errorf("get record: %w", err)
	default:
		for k, v := range attrs {
			rec.Set(k, v)
		}
	}

	created, err := s.save(ctx, col, rec, explicit)
	if err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

// Get retrieves a record by collection and ID.
func (s *Service) Get(ctx context.Context, collectionName, id string) (*domrec.Document, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	rec, err := s.repo.Get(ctx, col, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, collectionName, id string) error {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return fmt.Errorf("get collection: %w", err)
	}
	if err := s.repo.Delete(ctx, col, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// AddKeywords keywordizes a stored record with extra explicit keywords and saves it.
func (s *Service) AddKeywords(ctx context.Context, collectionName, id string, keywords any) (*domrec.Document, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	rec, err := s.repo.Get(ctx, col, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	if err := s.keywords.Keywordize(ctx, col, rec, keywords); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by keywordize
	}
	if err := s.persist(ctx, col, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RemoveKeywords drops keywords from a stored record and saves it.
// Source fields are untouched, so no extraction runs.
func (s *Service) RemoveKeywords(
	ctx context.Context, collectionName, id string, keywords any,
) (*domrec.Document, error) {
	col, err := s.colls.Get(ctx, collectionName)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	rec, err := s.repo.Get(ctx, col, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	s.keywords.Unkeywordize(col, rec, keywords)
	if err := s.persist(ctx, col, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) save(ctx context.Context, col collection.Collection, rec *domrec.Document, explicit any) (bool, error) {
	if explicit != nil || s.keywords.NeedsKeywordize(col, rec) {
		if err := s.keywords.Keywordize(ctx, col, rec, explicit); err != nil {
			s.logger.Warn("Save aborted",
				zap.String("collection", col.Name()),
				zap.String("id", rec.ID()),
				zap.Error(err),
			)
			return false, err //nolint:wrapcheck // already wrapped by keywordize
		}
	}

	created, err := s.repo.Upsert(ctx, col, rec)
	if err != nil {
		return false, fmt.Errorf("upsert record: %w", err)
	}
	rec.MarkPersisted()
	return created, nil
}

func (s *Service) persist(ctx context.Context, col collection.Collection, rec *domrec.Document) error {
	if _, err := s.repo.Upsert(ctx, col, rec); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	rec.MarkPersisted()
	return nil
}
