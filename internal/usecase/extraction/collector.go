package extraction

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/domain/record"
)

// CollectorConfig controls the fan-out.
type CollectorConfig struct {
	// MaxConcurrency caps simultaneous extractions; 0 means one goroutine per field.
	MaxConcurrency int
	// CancelOnError cancels the context of sibling extractions after the first failure.
	// Off by default: siblings run to completion and their results are discarded.
	CancelOnError bool
}

// FieldText is the extraction input of one source field.
type FieldText struct {
	Field string
	Text  string
}

// Collector extracts keywords from every non-empty source field concurrently.
type Collector struct {
	extractor KeywordExtractor
	cfg       CollectorConfig
}

// NewCollector creates a collector over extractor.
func NewCollector(extractor KeywordExtractor, cfg CollectorConfig) *Collector {
	return &Collector{extractor: extractor, cfg: cfg}
}

// Snapshot reads the source fields of rec. Empty or absent values are skipped;
// lists are joined with a single space.
func Snapshot(rec record.Record, col collection.Collection) []FieldText {
	fields := col.Fields()
	out := make([]FieldText, 0, len(fields))
	for _, f := range fields {
		text, ok := keyword.FieldText(rec.Get(f))
		if !ok {
			continue
		}
		out = append(out, FieldText{Field: f, Text: text})
	}
	return out
}

// Collect snapshots rec and runs the extraction over its source fields.
func (c *Collector) Collect(ctx context.Context, rec record.Record, col collection.Collection) (keyword.Set, error) {
	return c.Run(ctx, Snapshot(rec, col), col)
}

// Run extracts every input concurrently and waits for all of them. If any
// extraction fails the first error is returned and no keywords are. On
// success all per-field sets are merged through one normalization pass.
func (c *Collector) Run(ctx context.Context, inputs []FieldText, col collection.Collection) (keyword.Set, error) {
	if len(inputs) == 0 {
		return keyword.Set{}, nil
	}

	g := &errgroup.Group{}
	gctx := ctx
	if c.cfg.CancelOnError {
		g, gctx = errgroup.WithContext(ctx)
	}
	if c.cfg.MaxConcurrency > 0 {
		g.SetLimit(c.cfg.MaxConcurrency)
	}

	results := make([]keyword.Set, len(inputs))
	for i, in := range inputs {
		opts := keyword.ExtractOptions{
			Field:     in.Field,
			Language:  col.Language(),
			Blacklist: col.Blacklist(),
		}
		g.Go(func() error {
			set, err := c.extractor.Extract(gctx, in.Text, opts)
			if err != nil {
				return err
			}
			results[i] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return keyword.Set{}, err //nolint:wrapcheck // extraction errors propagate verbatim
	}

	var all []string
	for _, s := range results {
		all = append(all, s.Slice()...)
	}
	return keyword.Normalize(all, col.Blacklist()), nil
}
