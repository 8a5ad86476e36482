package searchable

import (
	"context"

	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/usecase/extraction"
)

// ExtractOptions accompanies every text handed to an ExtractFunc.
type ExtractOptions struct {
	Field     string
	Language  string
	Blacklist []string
}

// ExtractFunc is a custom keyword extraction strategy. It returns raw terms;
// an empty result is a valid success. Panics are reported as extraction errors.
type ExtractFunc func(ctx context.Context, text string, opts ExtractOptions) ([]string, error)

// toInternal adapts fn to the internal extraction contract.
func (fn ExtractFunc) toInternal() extraction.Extractor {
	return extraction.Func(func(ctx context.Context, text string, opts keyword.ExtractOptions) ([]string, error) {
		return fn(ctx, text, ExtractOptions{
			Field:     opts.Field,
			Language:  opts.Language,
			Blacklist: opts.Blacklist.Terms(),
		})
	})
}
