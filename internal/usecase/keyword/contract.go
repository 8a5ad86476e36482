package keyword

import (
	"context"

	"github.com/kailas-cloud/searchable/internal/domain/collection"
	"github.com/kailas-cloud/searchable/internal/domain/keyword"
	"github.com/kailas-cloud/searchable/internal/usecase/extraction"
)

// Collector runs keyword extraction over a snapshot of source fields.
type Collector interface {
	Run(ctx context.Context, inputs []extraction.FieldText, col collection.Collection) (keyword.Set, error)
}
