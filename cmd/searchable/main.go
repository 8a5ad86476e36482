package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchable/internal/config"
	"github.com/kailas-cloud/searchable/internal/db"
	"github.com/kailas-cloud/searchable/internal/db/memory"
	dbRedis "github.com/kailas-cloud/searchable/internal/db/redis"
	"github.com/kailas-cloud/searchable/internal/extractor/term"
	logpkg "github.com/kailas-cloud/searchable/internal/logger"
	"github.com/kailas-cloud/searchable/internal/metrics"
	collectionrepo "github.com/kailas-cloud/searchable/internal/repository/collection"
	recordrepo "github.com/kailas-cloud/searchable/internal/repository/record"
	searchrepo "github.com/kailas-cloud/searchable/internal/repository/search"
	chiTransport "github.com/kailas-cloud/searchable/internal/transport/chi"
	openaiExt "github.com/kailas-cloud/searchable/internal/transport/openai"
	collectionuc "github.com/kailas-cloud/searchable/internal/usecase/collection"
	"github.com/kailas-cloud/searchable/internal/usecase/extraction"
	healthuc "github.com/kailas-cloud/searchable/internal/usecase/health"
	keyworduc "github.com/kailas-cloud/searchable/internal/usecase/keyword"
	recorduc "github.com/kailas-cloud/searchable/internal/usecase/record"
	searchuc "github.com/kailas-cloud/searchable/internal/usecase/search"
	"github.com/kailas-cloud/searchable/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchable API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("extractor", cfg.Extraction.Extractor),
	)

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// explicit, no init()
	metrics.RegisterExtractionMetrics()
	metrics.RegisterHTTPMetrics()

	ext, extName, err := buildExtractor(cfg.Extraction, logger)
	if err != nil {
		logger.Fatal("Failed to create extractor", zap.Error(err))
	}
	collector := extraction.NewCollector(
		extraction.NewAdapter(ext, extName, logger),
		extraction.CollectorConfig{
			MaxConcurrency: cfg.Extraction.MaxConcurrency,
			CancelOnError:  cfg.Extraction.CancelOnError,
		},
	)
	keywordSvc := keyworduc.New(collector, time.Duration(cfg.Extraction.TimeoutSec)*time.Second, logger)

	collRepo := collectionrepo.New(store, cfg.Storage.KeyPrefix)
	collSvc := collectionuc.New(collRepo)
	for _, name := range cfg.CollectionNames() {
		cc := cfg.Collections[name]
		col, err := collSvc.Register(ctx, collectionuc.Definition{
			Name:         name,
			KeywordField: cc.KeywordField,
			Fields:       cc.Fields,
			Blacklist:    cc.Blacklist,
			Language:     cc.Language,
		})
		if err != nil {
			logger.Fatal("Failed to register collection", zap.String("collection", name), zap.Error(err))
		}
		logger.Info("Collection registered",
			zap.String("collection", col.Name()),
			zap.Strings("fields", col.Fields()),
			zap.String("keyword_field", col.KeywordField()),
			zap.String("language", col.Language()),
		)
	}

	recordSvc := recorduc.New(recordrepo.New(store, cfg.Storage.KeyPrefix), collRepo, keywordSvc, logger)
	searchSvc := searchuc.New(searchrepo.New(store, cfg.Storage.KeyPrefix), collRepo, logger).
		WithPagination(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	// Pass a nil interface, not a typed nil, when the extractor has no probe.
	var extChecker healthuc.ExtractorChecker
	if hc, ok := ext.(healthuc.ExtractorChecker); ok {
		extChecker = hc
	}
	healthSvc := healthuc.New(store, extChecker)

	server := chiTransport.NewServer(collSvc, recordSvc, searchSvc, healthSvc, logger)
	router := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// buildExtractor picks the extraction strategy and returns it with its metrics label.
func buildExtractor(cfg config.ExtractionConfig, logger *zap.Logger) (extraction.Extractor, string, error) {
	switch cfg.Extractor {
	case config.ExtractorOpenAI:
		return openaiExt.NewExtractor(&openaiExt.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Logger:  logger,
		}), config.ExtractorOpenAI, nil
	case config.ExtractorTerm:
		ext, err := term.New(term.Config{
			MinFreq:        cfg.MinFreq,
			MaxPhraseWords: cfg.MaxPhraseWords,
			Collapse:       cfg.Collapse,
		})
		if err != nil {
			return nil, "", fmt.Errorf("term extractor: %w", err)
		}
		return ext, ext.Name(), nil
	default:
		return nil, "", fmt.Errorf("unknown extractor %q", cfg.Extractor)
	}
}
