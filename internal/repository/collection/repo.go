package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
)

// store is the consumer interface for collection indexes (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo holds the configured collections and keeps their text indexes in place.
// Implements usecase/search.CollectionReader and usecase/record.CollectionReader.
type Repo struct {
	store  store
	prefix string

	mu          sync.RWMutex
	collections map[string]domcol.Collection
}

// New creates a collection repository. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{
		store:       s,
		prefix:      prefix,
		collections: make(map[string]domcol.Collection),
	}
}

// Register ensures the text index of col exists and makes col available to Get.
// Registering a name again replaces its configuration.
func (r *Repo) Register(ctx context.Context, col domcol.Collection) error {
	if err := r.EnsureIndex(ctx, col); err != nil {
		return err
	}

	r.mu.Lock()
	r.collections[col.Name()] = col
	r.mu.Unlock()
	return nil
}

// EnsureIndex declares the keyword attribute of col as a full-text,
// multi-value field in the collection language. Existing indexes are kept.
func (r *Repo) EnsureIndex(ctx context.Context, col domcol.Collection) error {
	def, err := buildIndex(r.prefix, col)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return nil
	}

	// Another instance may create the index between the check and FT.CREATE.
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// Get returns a registered collection.
func (r *Repo) Get(_ context.Context, name string) (domcol.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	col, ok := r.collections[name]
	if !ok {
		return domcol.Collection{}, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
	}
	return col, nil
}

// List returns all registered collections sorted by name.
func (r *Repo) List(_ context.Context) ([]domcol.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domcol.Collection, 0, len(r.collections))
	for _, c := range r.collections {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out, nil
}
