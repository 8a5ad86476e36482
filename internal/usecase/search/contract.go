package search

import (
	"context"

	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	"github.com/kailas-cloud/searchable/internal/domain/search/result"
)

// Repository executes search filters against the datastore.
type Repository interface {
	Search(
		ctx context.Context, col collection.Collection,
		f filter.SearchFilter, offset, limit int,
	) (results []result.Result, total int, err error)

	SupportsTextSearch(ctx context.Context) bool
}

// CollectionReader reads collections for existence checks.
type CollectionReader interface {
	Get(ctx context.Context, name string) (collection.Collection, error)
}
