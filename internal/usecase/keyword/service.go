package keyword

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/usecase/extraction"
)

// Service maintains the keyword attribute of records.
type Service struct {
	collector Collector
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a keyword service. A zero timeout waits for extraction indefinitely.
func New(collector Collector, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{collector: collector, timeout: timeout, logger: logger}
}

// Keywordize stores normalize(stored ∪ explicit ∪ extracted) on rec.
// explicit may be nil, a string (split on whitespace) or a list of strings.
// On error rec is left untouched.
func (s *Service) Keywordize(ctx context.Context, col collection.Collection, rec record.Record, explicit any) error {
	base := record.Keywords(rec, col.KeywordField(), col.Blacklist()).
		Union(keyword.Normalize(keyword.Terms(explicit), col.Blacklist()))

	extracted, err := s.extract(ctx, col, extraction.Snapshot(rec, col))
	if err != nil {
		s.logger.Error("Keywordize failed",
			zap.String("collection", col.Name()),
			zap.Error(err),
		)
		return fmt.Errorf("keywordize: %w", err)
	}

	final := keyword.Normalize(base.Union(extracted).Slice(), col.Blacklist())
	rec.Set(col.KeywordField(), final.Slice())
	return nil
}

// extract runs the collector, bounded by the configured timeout. Inputs are
// snapshotted by the caller, so an abandoned run never touches the record.
func (s *Service) extract(
	ctx context.Context, col collection.Collection, inputs []extraction.FieldText,
) (keyword.Set, error) {
	if len(inputs) == 0 {
		return keyword.Set{}, nil
	}
	if s.timeout <= 0 {
		return s.collector.Run(ctx, inputs, col) //nolint:wrapcheck // wrapped by Keywordize
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		set keyword.Set
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		set, err := s.collector.Run(ctx, inputs, col)
		done <- outcome{set: set, err: err}
	}()

	select {
	case out := <-done:
		return out.set, out.err
	case <-ctx.Done():
		return keyword.Set{}, domain.NewExtractionError("", ctx.Err())
	}
}

// Unkeywordize removes remove from the stored set: a string is one keyword,
// a list removes each element. Keywords that are not present are ignored.
func (s *Service) Unkeywordize(col collection.Collection, rec record.Record, remove any) {
	stored := record.Keywords(rec, col.KeywordField(), col.Blacklist())
	drop := keyword.Normalize(keyword.Removal(remove), nil)
	rec.Set(col.KeywordField(), stored.Without(drop).Slice())
}

// NeedsKeywordize reports whether a save of rec must refresh its keywords:
// the record is new or one of its source fields changed.
func (s *Service) NeedsKeywordize(col collection.Collection, rec record.Record) bool {
	if rec.IsNew() {
		return true
	}
	for _, f := range col.Fields() {
		if rec.IsModified(f) {
			return true
		}
	}
	return false
}
