package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/FarhanAnis005/movie-search/internal/analytics"
	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/index"
	"github.com/FarhanAnis005/movie-search/internal/search"
	"github.com/FarhanAnis005/movie-search/internal/server/cache"
	"github.com/FarhanAnis005/movie-search/internal/server/handler"
	"github.com/FarhanAnis005/movie-search/pkg/config"
	"github.com/FarhanAnis005/movie-search/pkg/health"
	"github.com/FarhanAnis005/movie-search/pkg/kafka"
	"github.com/FarhanAnis005/movie-search/pkg/logger"
	"github.com/FarhanAnis005/movie-search/pkg/metrics"
	"github.com/FarhanAnis005/movie-search/pkg/middleware"
	"github.com/FarhanAnis005/movie-search/pkg/postgres"
	pkgredis "github.com/FarhanAnis005/movie-search/pkg/redis"
	"github.com/FarhanAnis005/movie-search/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting movie search service",
		"port", cfg.Server.Port,
		"catalog_source", cfg.Catalog.Source,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	movies, err := loadCatalog(ctx, cfg)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	if len(movies) == 0 {
		slog.Error("catalog is empty, refusing to start")
		os.Exit(1)
	}

	ix := index.Build(movies)
	session := search.New(ix, cfg.Search.ResultLimit, cfg.Search.NoResultMessage)
	slog.Info("search session ready",
		"movies", len(movies),
		"result_limit", cfg.Search.ResultLimit,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.CatalogMovies.Set(float64(len(movies)))
		m.IndexTerms.Set(float64(ix.TermCount()))
		m.IndexYears.Set(float64(len(ix.Years())))
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	var resultCache *cache.ResultCache
	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, result caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		resultCache = cache.New(redisClient, cfg.Redis)
		slog.Info("result cache enabled",
			"addr", cfg.Redis.Addr,
			"ttl", cfg.Redis.CacheTTL,
		)
	}

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
	defer producer.Close()
	collector := analytics.NewCollector(producer, 10000)
	collector.Start(ctx)
	defer collector.Close()

	aggregator := analytics.NewAggregator()
	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents, analytics.HandleEvent(aggregator))
	go func() {
		if err := consumer.Start(ctx); err != nil {
			slog.Error("analytics consumer error", "error", err)
		}
	}()

	checker := health.NewChecker()
	checker.Register("catalog", func(ctx context.Context) health.ComponentHealth {
		if len(ix.Movies()) > 0 {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d movies indexed", len(ix.Movies())),
			}
		}
		return health.ComponentHealth{Status: health.StatusDown, Message: "no movies"}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	h := handler.New(session, resultCache, collector, m, cfg.Search.ResultLimit, cfg.Search.MaxResults)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /api/v1/analytics", aggregator.StatsHandler())
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("search service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("search service stopped")
}

// loadCatalog reads the movie catalog from the configured source. Postgres
// loads are retried: the database may still be warming up when the service
// starts.
func loadCatalog(ctx context.Context, cfg *config.Config) ([]*catalog.Movie, error) {
	switch cfg.Catalog.Source {
	case "postgres":
		var movies []*catalog.Movie
		err := resilience.Retry(ctx, "catalog-load", resilience.RetryConfig{MaxAttempts: 5}, func() error {
			client, err := postgres.New(cfg.Postgres)
			if err != nil {
				return err
			}
			defer client.Close()
			movies, err = catalog.NewStore(client).List(ctx)
			return err
		})
		return movies, err
	default:
		return catalog.LoadFile(cfg.Catalog.Path)
	}
}
