package extraction

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/metrics"
)

// Adapter runs an extraction strategy behind a uniform contract: panics
// become errors, failures are wrapped in domain.ExtractionError, and output
// is normalized against the blacklist.
type Adapter struct {
	inner  Extractor
	name   string
	logger *zap.Logger
}

// NewAdapter wraps inner. name labels logs and metrics.
func NewAdapter(inner Extractor, name string, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{inner: inner, name: name, logger: logger}
}

// Name returns the strategy label.
func (a *Adapter) Name() string { return a.name }

// Extract runs the strategy and normalizes its output.
func (a *Adapter) Extract(ctx context.Context, text string, opts keyword.ExtractOptions) (keyword.Set, error) {
	start := time.Now()

	raw, err := a.guarded(ctx, text, opts)

	duration := time.Since(start)
	metrics.ExtractionDuration.WithLabelValues(a.name).Observe(duration.Seconds())

	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues(a.name, "error").Inc()
		a.logger.Error("Keyword extraction failed",
			zap.String("extractor", a.name),
			zap.String("field", opts.Field),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return keyword.Set{}, domain.NewExtractionError(opts.Field, err)
	}

	set := keyword.Normalize(raw, opts.Blacklist)
	metrics.ExtractionRequestsTotal.WithLabelValues(a.name, "success").Inc()
	metrics.KeywordsExtractedTotal.WithLabelValues(a.name).Add(float64(set.Len()))

	a.logger.Debug("Keyword extraction completed",
		zap.String("extractor", a.name),
		zap.String("field", opts.Field),
		zap.Duration("duration", duration),
		zap.Int("raw_terms", len(raw)),
		zap.Int("keywords", set.Len()),
	)

	return set, nil
}

func (a *Adapter) guarded(ctx context.Context, text string, opts keyword.ExtractOptions) (raw []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return a.inner.Extract(ctx, text, opts)
}
