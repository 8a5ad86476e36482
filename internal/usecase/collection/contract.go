package collection

import (
	"context"

	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
)

// Repository defines the storage contract for collections.
type Repository interface {
	Register(ctx context.Context, col domcol.Collection) error
	Get(ctx context.Context, name string) (domcol.Collection, error)
	List(ctx context.Context) ([]domcol.Collection, error)
}
