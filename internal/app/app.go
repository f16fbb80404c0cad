package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"

	"github.com/caselens/caselens/internal/config"
	"github.com/caselens/caselens/internal/export"
	"github.com/caselens/caselens/internal/httpserver"
	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/index"
	"github.com/caselens/caselens/internal/library"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/redis"
	"github.com/caselens/caselens/internal/scheduler"
	"github.com/caselens/caselens/internal/sparql"
	"github.com/caselens/caselens/internal/storage"
	"github.com/caselens/caselens/internal/storage/memory"
	"github.com/caselens/caselens/internal/storage/redisstore"
	"github.com/caselens/caselens/internal/storage/sqlitestore"
	"github.com/caselens/caselens/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	sqliteStore *sqlitestore.Adapter
	topicIndex  *index.TopicIndex
	reloader    *scheduler.TopicsReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		File:   cfg.LogFile,
	})

	// Pick the persistence backend - fail fast if unavailable
	var (
		adapter     storage.Adapter
		redisClient *goredis.Client
		sqliteStore *sqlitestore.Adapter
	)
	switch cfg.StorageBackend {
	case config.BackendMemory:
		loggerClient.Warn("memory backend selected, the library will not survive restarts")
		adapter = memory.New()
	case config.BackendSQLite:
		loggerClient.Infof("Opening sqlite store at %s", cfg.SQLitePath)
		st, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			loggerClient.Errorf("Failed to open sqlite store: %v", err)
			os.Exit(1)
		}
		sqliteStore = st
		adapter = st
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		adapter = redisstore.New(client)
	}

	// Library stores load their persisted state once at startup; a corrupt
	// or missing record degrades to an empty store with a warning.
	loadCtx := context.Background()
	caseCache := library.NewCaseCache(loadCtx, adapter, loggerClient)
	bookmarks := library.NewBookmarks(loadCtx, adapter, caseCache, loggerClient)
	collections := library.NewCollections(loadCtx, adapter, caseCache, loggerClient)
	exporter := export.NewEncoder(bookmarks, collections, caseCache, cfg.ShareBaseURL)

	sparqlClient := sparql.New(sparql.Options{
		Endpoint:   cfg.SparqlEndpoint,
		UserAgent:  cfg.SparqlUserAgent,
		Timeout:    cfg.SparqlTimeout,
		MaxRetries: cfg.SparqlRetries,
		RetryBase:  cfg.SparqlRetryBase,
		CacheTTL:   cfg.SparqlCacheTTL,
	}, loggerClient)

	// Browse topics are optional: no topics file, no browse endpoints data.
	var (
		topicIndex    *index.TopicIndex
		reloader      *scheduler.TopicsReloader
		reloadTrigger chan struct{}
	)
	if cfg.TopicsFile != "" {
		topicIndex = index.NewTopicIndex()
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewTopicsReloader(
			cfg.TopicsFile,
			topicIndex,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("topics file not configured, browse disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,

		Bookmarks:   bookmarks,
		Collections: collections,
		Cases:       caseCache,
		Exporter:    exporter,

		Sparql:          sparqlClient,
		Topics:          topicIndex,
		SearchLimit:     cfg.SearchLimit,
		BrowseLimit:     cfg.BrowseLimit,
		DefaultLanguage: cfg.DefaultLanguage,

		Validate: validator.New(),

		StorageBackend: cfg.StorageBackend,
		RedisClient:    redisClient,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		ReloadTrigger:  reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		sqliteStore: sqliteStore,
		topicIndex:  topicIndex,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Caselens v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Caselens %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start topics reloader: %w", err)
		}
		a.logger.Info("topics reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.sqliteStore != nil {
		if err := a.sqliteStore.Close(); err != nil {
			a.logger.Warnf("failed to close sqlite store: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Caselens stopped cleanly")
	return nil
}
