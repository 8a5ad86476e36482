package record

import (
	"context"

	"github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
)

// Repository defines the storage contract for records.
type Repository interface {
	Upsert(ctx context.Context, col collection.Collection, rec *domrec.Document) (created bool, err error)
	Get(ctx context.Context, col collection.Collection, id string) (*domrec.Document, error)
	Delete(ctx context.Context, col collection.Collection, id string) error
}

// CollectionReader reads collections for existence checks.
type CollectionReader interface {
	Get(ctx context.Context, name string) (collection.Collection, error)
}

// Keywords maintains the keyword attribute of a record.
type Keywords interface {
	Keywordize(ctx context.Context, col collection.Collection, rec domrec.Record, explicit any) error
	Unkeywordize(col collection.Collection, rec domrec.Record, remove any)
	NeedsKeywordize(col collection.Collection, rec domrec.Record) bool
}
