package searchable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/db/memory"
	dbRedis "github.com/kailas-cloud/searchable/internal/db/redis"
	domcol "github.com/kailas-cloud/searchable/internal/domain/collection"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
	"github.com/kailas-cloud/searchable/internal/domain/search/filter"
	"github.com/kailas-cloud/searchable/internal/extractor/term"
	collectionrepo "github.com/kailas-cloud/searchable/internal/repository/collection"
	recordrepo "github.com/kailas-cloud/searchable/internal/repository/record"
	searchrepo "github.com/kailas-cloud/searchable/internal/repository/search"
	collectionuc "github.com/kailas-cloud/searchable/internal/usecase/collection"
	"github.com/kailas-cloud/searchable/internal/usecase/extraction"
	healthuc "github.com/kailas-cloud/searchable/internal/usecase/health"
	keyworduc "github.com/kailas-cloud/searchable/internal/usecase/keyword"
	recorduc "github.com/kailas-cloud/searchable/internal/usecase/record"
	searchuc "github.com/kailas-cloud/searchable/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// internal interfaces, swapped for mocks in tests
type collectionUseCase interface {
	Register(ctx context.Context, def collectionuc.Definition) (domcol.Collection, error)
	Get(ctx context.Context, name string) (domcol.Collection, error)
	List(ctx context.Context) ([]domcol.Collection, error)
}

type recordUseCase interface {
	Put(ctx context.Context, col, id string, attrs map[string]any, explicit any) (*domrec.Document, bool, error)
	Get(ctx context.Context, col, id string) (*domrec.Document, error)
	Delete(ctx context.Context, col, id string) error
	AddKeywords(ctx context.Context, col, id string, keywords any) (*domrec.Document, error)
	RemoveKeywords(ctx context.Context, col, id string, keywords any) (*domrec.Document, error)
}

type searchUseCase interface {
	Build(ctx context.Context, col string, phrase any, options map[string]any) (filter.SearchFilter, error)
	Search(ctx context.Context, col string, req searchuc.Request) (searchuc.Response, error)
}

// Client is the searchable SDK entry point.
type Client struct {
	store     db.Store
	collSvc   collectionUseCase
	recordSvc recordUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client, waits for the datastore and registers the configured
// collections. The provided context bounds startup.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("searchable: datastore required (use WithRedis or WithMemory)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchable: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := c.registerCollections(ctx, cfg.collections); err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("searchable: create redis store: %w", err)
		}
		return s, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("searchable: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	ext, name, err := buildExtractor(cfg)
	if err != nil {
		return nil, err
	}

	collector := extraction.NewCollector(
		extraction.NewAdapter(ext, name, cfg.logger),
		extraction.CollectorConfig{
			MaxConcurrency: cfg.maxConcurrency,
			CancelOnError:  cfg.cancelOnError,
		},
	)
	keywordSvc := keyworduc.New(collector, cfg.extractionTimeout, cfg.logger)

	collRepo := collectionrepo.New(store, cfg.keyPrefix)
	recordSvc := recorduc.New(recordrepo.New(store, cfg.keyPrefix), collRepo, keywordSvc, cfg.logger)
	searchSvc := searchuc.New(searchrepo.New(store, cfg.keyPrefix), collRepo, cfg.logger).
		WithPagination(cfg.defaultLimit, cfg.maxLimit)

	return &Client{
		store:     store,
		collSvc:   collectionuc.New(collRepo),
		recordSvc: recordSvc,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store, nil),
		obs:       obs,
	}, nil
}

func buildExtractor(cfg *clientConfig) (extraction.Extractor, string, error) {
	if cfg.extractor != nil {
		name := cfg.extractorName
		if name == "" {
			name = "custom"
		}
		return cfg.extractor.toInternal(), name, nil
	}
	ext, err := term.New(term.Config{})
	if err != nil {
		return nil, "", fmt.Errorf("searchable: term extractor: %w", err)
	}
	return ext, ext.Name(), nil
}

func (c *Client) registerCollections(ctx context.Context, specs []collectionSpec) error {
	for _, cs := range specs {
		if _, err := c.RegisterCollection(ctx, cs.name, cs.opts...); err != nil {
			return err
		}
	}
	return nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	done := c.obs.track("ping", "")
	defer func() { done(err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// RegisterCollection validates a collection and ensures its text index exists.
// Registering the same name again replaces the configuration.
func (c *Client) RegisterCollection(
	ctx context.Context, name string, opts ...CollectionOption,
) (info CollectionInfo, err error) {
	done := c.obs.track("register_collection", name)
	defer func() { done(err) }()

	var cc collectionConfig
	for _, o := range opts {
		o.applyCollection(&cc)
	}
	if cc.err != nil {
		return CollectionInfo{}, fmt.Errorf("%w: %w", ErrInvalidCollection, cc.err)
	}

	col, err := c.collSvc.Register(ctx, collectionuc.Definition{
		Name:         name,
		KeywordField: cc.keywordField,
		Fields:       cc.fields,
		Blacklist:    cc.blacklist,
		Language:     cc.language,
	})
	if err != nil {
		return CollectionInfo{}, fmt.Errorf("register collection: %w", err)
	}
	return toCollectionInfo(col), nil
}

// Collections lists registered collections sorted by name.
func (c *Client) Collections(ctx context.Context) (infos []CollectionInfo, err error) {
	done := c.obs.track("list_collections", "")
	defer func() { done(err) }()

	cols, err := c.collSvc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	infos = make([]CollectionInfo, len(cols))
	for i, col := range cols {
		infos[i] = toCollectionInfo(col)
	}
	return infos, nil
}

// Records returns the record service for a given collection.
func (c *Client) Records(collection string) *RecordService {
	return &RecordService{
		collection: collection,
		svc:        c.recordSvc,
		colls:      c.collSvc,
		obs:        c.obs,
	}
}

// Search returns the search service for a given collection.
func (c *Client) Search(collection string) *SearchService {
	return &SearchService{
		collection: collection,
		svc:        c.searchSvc,
		colls:      c.collSvc,
		obs:        c.obs,
	}
}

// BuildSearch returns the filter a search would run, without running it.
func (c *Client) BuildSearch(
	ctx context.Context, collection string, phrase any, options map[string]any,
) (f Filter, err error) {
	done := c.obs.track("build_search", collection)
	defer func() { done(err) }()

	sf, err := c.searchSvc.Build(ctx, collection, phrase, options)
	if err != nil {
		return Filter{}, fmt.Errorf("build search: %w", err)
	}
	return fromInternalFilter(sf), nil
}
