package extraction

import (
	"context"

	"github.com/kailas-cloud/searchable/internal/domain/keyword"
)

// Extractor is a keyword extraction strategy. It returns raw, unnormalized
// terms; an empty result is a valid success and must be told apart from an error.
type Extractor interface {
	Extract(ctx context.Context, text string, opts keyword.ExtractOptions) ([]string, error)
}

// Func adapts a plain function into an Extractor (custom extraction strategy).
type Func func(ctx context.Context, text string, opts keyword.ExtractOptions) ([]string, error)

// Extract calls f.
func (f Func) Extract(ctx context.Context, text string, opts keyword.ExtractOptions) ([]string, error) {
	return f(ctx, text, opts)
}

// KeywordExtractor turns one text into a normalized keyword set.
type KeywordExtractor interface {
	Extract(ctx context.Context, text string, opts keyword.ExtractOptions) (keyword.Set, error)
}
