// Package memory implements db.Store in process: JSON documents in a map and
// one in-memory bleve index per index definition. It backs tests and
// single-node deployments without Redis.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	_ "github.com/blevesearch/bleve/v2/analysis/analyzer/standard" // "standard" analyzer
	_ "github.com/blevesearch/bleve/v2/analysis/lang/de"           // "de" analyzer
	_ "github.com/blevesearch/bleve/v2/analysis/lang/en"           // "en" analyzer
	_ "github.com/blevesearch/bleve/v2/analysis/lang/es"           // "es" analyzer
	_ "github.com/blevesearch/bleve/v2/analysis/lang/fr"           // "fr" analyzer
	_ "github.com/blevesearch/bleve/v2/analysis/lang/it"           // "it" analyzer
	_ "github.com/blevesearch/bleve/v2/analysis/lang/pt"           // "pt" analyzer
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/searchable/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// analyzers maps search languages onto bleve analyzer names.
var analyzers = map[string]string{
	"english":       "en",
	"french":        "fr",
	"german":        "de",
	"spanish":       "es",
	"italian":       "it",
	"portuguese":    "pt",
	db.LanguageNone: "standard", // no stemming, English stop words dropped
}

// Store keeps documents and their text indexes in memory.
type Store struct {
	mu      sync.RWMutex
	docs    map[string][]byte
	indexes map[string]*textIndex
	closed  bool
}

type textIndex struct {
	def   db.IndexDefinition
	index bleve.Index
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs:    make(map[string][]byte),
		indexes: make(map[string]*textIndex),
	}
}

// Ping reports an error once the store is closed.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("ping: store is closed")
	}
	return nil
}

// WaitForReady returns immediately: an open in-memory store is always ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close releases every index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ti := range s.indexes {
		_ = ti.index.Close()
	}
	s.indexes = make(map[string]*textIndex)
	s.closed = true
}

// --- JSON documents ---

// JSONSet replaces the document at key and reindexes it. Only the root path
// is supported. When indexing fails the previous document stays in place.
func (s *Store) JSONSet(_ context.Context, key, path string, data []byte) error {
	if path != "$" && path != "." {
		return &db.Error{Op: db.OpJSONSet, Key: key, Err: fmt.Errorf("unsupported path %q", path)}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &db.Error{Op: db.OpJSONSet, Key: key, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpJSONSet, Key: key, Err: fmt.Errorf("store is closed")}
	}

	indexed := make([]*textIndex, 0, len(s.indexes))
	for _, ti := range s.indexes {
		if !ti.covers(key) {
			continue
		}
		if err := ti.index.Index(key, ti.fieldsOf(doc)); err != nil {
			s.restoreEntries(key, indexed)
			return &db.Error{Op: db.OpJSONSet, Key: key, Err: fmt.Errorf("index %s: %w", ti.def.Name, err)}
		}
		indexed = append(indexed, ti)
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	s.docs[key] = stored
	return nil
}

// restoreEntries puts the index entries of key back to the stored document,
// or removes them when nothing is stored. Caller holds s.mu.
func (s *Store) restoreEntries(key string, indexes []*textIndex) {
	prev, ok := s.docs[key]
	var doc any
	if ok && json.Unmarshal(prev, &doc) != nil {
		ok = false
	}
	for _, ti := range indexes {
		if ok {
			_ = ti.index.Index(key, ti.fieldsOf(doc))
		} else {
			_ = ti.index.Delete(key)
		}
	}
}

// JSONGet returns the stored document. Paths are ignored; the whole document is returned.
func (s *Store) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Del removes the document and its index entries. Missing keys are not an error.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[key]; !ok {
		return nil
	}
	delete(s.docs, key)
	for _, ti := range s.indexes {
		if !ti.covers(key) {
			continue
		}
		if err := ti.index.Delete(key); err != nil {
			return &db.Error{Op: db.OpDel, Key: key, Err: err}
		}
	}
	return nil
}

// Exists reports whether a document is stored at key.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[key]
	return ok, nil
}

// --- Indexes ---

// CreateIndex builds a bleve index for def and indexes every stored document under its prefixes.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}

	im, err := buildMapping(def)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Key: def.Name, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Key: def.Name, Err: err}
	}
	ti := &textIndex{def: cloneDefinition(def), index: idx}

	batch := idx.NewBatch()
	for key, data := range s.docs {
		if !ti.covers(key) {
			continue
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		if err := batch.Index(key, ti.fieldsOf(doc)); err != nil {
			_ = idx.Close()
			return &db.Error{Op: db.OpCreateIndex, Key: def.Name, Err: err}
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return &db.Error{Op: db.OpCreateIndex, Key: def.Name, Err: err}
	}

	s.indexes[def.Name] = ti
	return nil
}

// DropIndex removes an index. Documents are kept.
func (s *Store) DropIndex(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, ok := s.indexes[name]
	if !ok {
		return db.ErrIndexNotFound
	}
	delete(s.indexes, name)
	if err := ti.index.Close(); err != nil {
		return &db.Error{Op: db.OpDropIndex, Key: name, Err: err}
	}
	return nil
}

// IndexExists reports whether an index with name was created.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[name]
	return ok, nil
}

// SupportsTextSearch returns true: bleve provides analyzed TEXT fields and relevance scoring.
func (s *Store) SupportsTextSearch(_ context.Context) bool {
	return true
}

func (ti *textIndex) covers(key string) bool {
	if len(ti.def.Prefixes) == 0 {
		return true
	}
	for _, p := range ti.def.Prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// fieldsOf projects a decoded JSON document onto the index attributes.
func (ti *textIndex) fieldsOf(doc any) map[string]any {
	out := make(map[string]any, len(ti.def.Fields))
	for i := range ti.def.Fields {
		f := &ti.def.Fields[i]
		values := resolvePath(doc, f.Path)
		if len(values) == 0 {
			continue
		}
		out[f.AttributeName()] = stringValues(values)
	}
	return out
}

func buildMapping(def *db.IndexDefinition) (*mapping.IndexMappingImpl, error) {
	lang := def.Language
	if lang == "" {
		lang = "english"
	}
	analyzer, ok := analyzers[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}

	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = analyzer

	dm := bleve.NewDocumentMapping()
	for i := range def.Fields {
		f := &def.Fields[i]
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = analyzer
		dm.AddFieldMappingsAt(f.AttributeName(), fm)
	}
	im.DefaultMapping = dm
	return im, nil
}

func cloneDefinition(def *db.IndexDefinition) db.IndexDefinition {
	c := *def
	c.Prefixes = append([]string(nil), def.Prefixes...)
	c.Fields = append([]db.IndexField(nil), def.Fields...)
	return c
}
