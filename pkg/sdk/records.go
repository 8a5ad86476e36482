package searchable

import (
	"context"
	"fmt"

	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
)

// RecordService manages records within a single collection.
type RecordService struct {
	collection string
	svc        recordUseCase
	colls      collectionUseCase
	obs        *observer
}

// Save creates the record id or updates the given attributes of the stored
// one, refreshing its keywords when a source field changed. keywords may be
// nil, a string (split on whitespace) or a []string, and is merged into the
// keyword set. Returns true if the record was created.
func (s *RecordService) Save(
	ctx context.Context, id string, attrs map[string]any, keywords any,
) (rec Record, created bool, err error) {
	done := s.obs.track("save", s.collection)
	defer func() { done(err) }()

	doc, created, err := s.svc.Put(ctx, s.collection, id, attrs, keywords)
	if err != nil {
		return Record{}, false, fmt.Errorf("save: %w", err)
	}
	rec, err = s.toRecord(ctx, doc)
	return rec, created, err
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (rec Record, err error) {
	done := s.obs.track("get", s.collection)
	defer func() { done(err) }()

	doc, err := s.svc.Get(ctx, s.collection, id)
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return s.toRecord(ctx, doc)
}

// Delete removes a record by ID.
func (s *RecordService) Delete(ctx context.Context, id string) (err error) {
	done := s.obs.track("delete", s.collection)
	defer func() { done(err) }()

	if err = s.svc.Delete(ctx, s.collection, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Keywordize re-extracts keywords of a stored record, merges keywords into
// them and saves it.
func (s *RecordService) Keywordize(ctx context.Context, id string, keywords any) (rec Record, err error) {
	done := s.obs.track("keywordize", s.collection)
	defer func() { done(err) }()

	doc, err := s.svc.AddKeywords(ctx, s.collection, id, keywords)
	if err != nil {
		return Record{}, fmt.Errorf("keywordize: %w", err)
	}
	return s.toRecord(ctx, doc)
}

// Unkeywordize drops keywords from a stored record and saves it. A string
// names one keyword, multi-word phrases included; a []string drops each
// element. No extraction runs.
func (s *RecordService) Unkeywordize(ctx context.Context, id string, keywords any) (rec Record, err error) {
	done := s.obs.track("unkeywordize", s.collection)
	defer func() { done(err) }()

	doc, err := s.svc.RemoveKeywords(ctx, s.collection, id, keywords)
	if err != nil {
		return Record{}, fmt.Errorf("unkeywordize: %w", err)
	}
	return s.toRecord(ctx, doc)
}

func (s *RecordService) toRecord(ctx context.Context, doc *domrec.Document) (Record, error) {
	col, err := s.colls.Get(ctx, s.collection)
	if err != nil {
		return Record{}, fmt.Errorf("get collection: %w", err)
	}
	return fromInternalRecord(col, doc), nil
}
