package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain"
	"github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
)

// store is the consumer interface for records (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo stores records as JSON documents under the collection key prefix.
// Implements usecase/record.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a record repository. An empty prefix uses domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Upsert writes the whole record. Returns true if the key did not exist.
func (r *Repo) Upsert(ctx context.Context, col collection.Collection, rec *domrec.Document) (bool, error) {
	key := domain.RecordKey(r.prefix, col.Name(), rec.ID())
	data, err := json.Marshal(buildJSONDoc(col, rec))
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}
	return !exists, nil
}

// Get loads a persisted record.
func (r *Repo) Get(ctx context.Context, col collection.Collection, id string) (*domrec.Document, error) {
	key := domain.RecordKey(r.prefix, col.Name(), id)
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("json.get %s: %w", key, err)
	}

	attrs, err := DecodeAttributes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return domrec.Reconstruct(id, attrs), nil
}

// Delete removes a record.
func (r *Repo) Delete(ctx context.Context, col collection.Collection, id string) error {
	key := domain.RecordKey(r.prefix, col.Name(), id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// buildJSONDoc returns the stored form of rec. The keyword attribute is
// always an array so the index path over its elements resolves.
func buildJSONDoc(col collection.Collection, rec *domrec.Document) map[string]any {
	attrs := rec.Attributes()
	attrs[col.KeywordField()] = domrec.Keywords(rec, col.KeywordField(), nil).Slice()
	return attrs
}

// DecodeAttributes parses a stored JSON document. JSON.GET with a "$" path
// wraps the document in an array; both forms are accepted.
func DecodeAttributes(raw []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		v = arr[0]
	}
	attrs, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document is not an object")
	}
	return attrs, nil
}
