package record

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/domain"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
)

// --- Upsert ---

func TestUpsert_Create(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	rec, err := domrec.New("doc-1", map[string]any{"title": "Moby Dick"})
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}

	var stored map[string]any
	ms.existsFn = func(_ context.Context, key string) (bool, error) {
		if key != "searchable:notes:doc-1" {
			t.Errorf("unexpected key: %s", key)
		}
		return false, nil
	}
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		if key != "searchable:notes:doc-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if path != "$" {
			t.Errorf("unexpected path: %s", path)
		}
		return json.Unmarshal(data, &stored)
	}

	created, err := repo.Upsert(ctx, testCollection(t), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for new record")
	}
	if stored["title"] != "Moby Dick" {
		t.Errorf("title = %v", stored["title"])
	}
	if kw, ok := stored["keywords"].([]any); !ok || len(kw) != 0 {
		t.Errorf("keywords must be stored as an empty array, got %#v", stored["keywords"])
	}
}

func TestUpsert_Update(t *testing.T) {
	repo, ms := newTestRepo(t)
	rec := domrec.Reconstruct("doc-1", map[string]any{"keywords": []string{"whale"}})

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }

	created, err := repo.Upsert(context.Background(), testCollection(t), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected created=false for existing record")
	}
}

func TestUpsert_StoreErrors(t *testing.T) {
	rec := domrec.Reconstruct("doc-1", nil)

	t.Run("exists", func(t *testing.T) {
		repo, ms := newTestRepo(t)
		ms.existsFn = func(_ context.Context, _ string) (bool, error) {
			return false, errors.New("connection lost")
		}
		if _, err := repo.Upsert(context.Background(), testCollection(t), rec); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("json.set", func(t *testing.T) {
		repo, ms := newTestRepo(t)
		ms.jsonSetFn = func(_ context.Context, _, _ string, _ []byte) error {
			return &db.Error{Op: db.OpJSONSet, Err: errors.New("OOM")}
		}
		_, err := repo.Upsert(context.Background(), testCollection(t), rec)
		var dbErr *db.Error
		if !errors.As(err, &dbErr) {
			t.Fatalf("expected db.Error in chain, got %v", err)
		}
	})
}

// --- Get ---

func TestGet_Found(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, key string, paths ...string) ([]byte, error) {
		if key != "searchable:notes:doc-1" {
			t.Errorf("unexpected key: %s", key)
		}
		if len(paths) != 0 {
			t.Errorf("unexpected paths: %v", paths)
		}
		return []byte(`{"title":"Moby Dick","keywords":["whale"]}`), nil
	}

	rec, err := repo.Get(context.Background(), testCollection(t), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID() != "doc-1" || rec.Get("title") != "Moby Dick" {
		t.Errorf("unexpected record: %v", rec.Attributes())
	}
	if rec.IsNew() {
		t.Error("loaded record must not be new")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Get(context.Background(), testCollection(t), "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGet_Corrupt(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`"just a string"`), nil
	}

	if _, err := repo.Get(context.Background(), testCollection(t), "doc-1"); err == nil {
		t.Fatal("expected error")
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	var deleted string
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.delFn = func(_ context.Context, key string) error {
		deleted = key
		return nil
	}

	if err := repo.Delete(context.Background(), testCollection(t), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "searchable:notes:doc-1" {
		t.Errorf("deleted %q", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.Delete(context.Background(), testCollection(t), "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

// --- DecodeAttributes ---

func TestDecodeAttributes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{"object", `{"a":"b"}`, map[string]any{"a": "b"}, false},
		{"path wrapped", `[{"a":1}]`, map[string]any{"a": float64(1)}, false},
		{"empty array", `[]`, nil, true},
		{"scalar", `42`, nil, true},
		{"invalid", `{`, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeAttributes([]byte(tc.raw))
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
