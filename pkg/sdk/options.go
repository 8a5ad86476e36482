package searchable

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "redis" or "memory"
	addrs     []string
	password  string
	keyPrefix string

	collections []collectionSpec

	extractor         ExtractFunc
	extractorName     string
	extractionTimeout time.Duration
	maxConcurrency    int
	cancelOnError     bool
	readinessTimeout  time.Duration
	defaultLimit      int
	maxLimit          int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

type collectionSpec struct {
	name string
	opts []CollectionOption
}

// WithRedis stores records in Redis 8+ (RedisJSON and RediSearch).
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMemory keeps records in process, indexed by bleve. Nothing survives Close.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "memory"
		c.addrs = nil
	})
}

// WithKeyPrefix namespaces every key the client writes. Default "searchable:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCollection registers a collection when the client starts.
func WithCollection(name string, opts ...CollectionOption) Option {
	return optionFunc(func(c *clientConfig) {
		c.collections = append(c.collections, collectionSpec{name: name, opts: opts})
	})
}

// WithExtractor replaces the built-in term extractor. fn receives the text of
// one source field and returns raw terms; normalization and the blacklist are
// applied afterwards.
func WithExtractor(name string, fn ExtractFunc) Option {
	return optionFunc(func(c *clientConfig) {
		c.extractor = fn
		c.extractorName = name
	})
}

// WithExtractionTimeout bounds one keywordize call. Zero (default) waits indefinitely.
func WithExtractionTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.extractionTimeout = d
	})
}

// WithMaxConcurrency caps simultaneous per-field extractions. Zero (default) is unlimited.
func WithMaxConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConcurrency = n
	})
}

// WithCancelOnError cancels sibling field extractions after the first failure.
func WithCancelOnError() Option {
	return optionFunc(func(c *clientConfig) {
		c.cancelOnError = true
	})
}

// WithReadinessTimeout bounds the initial database readiness wait. Default 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithPagination sets the default and maximum search page size. Defaults 20 and 100.
func WithPagination(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations) and
// the extraction metrics on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
