// Command catalogctl loads a JSON movie catalog into PostgreSQL so searchd
// can start with catalog.source set to "postgres".
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/pkg/config"
	"github.com/FarhanAnis005/movie-search/pkg/logger"
	"github.com/FarhanAnis005/movie-search/pkg/postgres"
	"github.com/FarhanAnis005/movie-search/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	filePath := flag.String("file", "", "JSON catalog to load (defaults to catalog.path from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	path := *filePath
	if path == "" {
		path = cfg.Catalog.Path
	}

	movies, err := catalog.LoadFile(path)
	if err != nil {
		slog.Error("failed to read catalog", "path", path, "error", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var client *postgres.Client
	err = resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{MaxAttempts: 5}, func() error {
		client, err = postgres.New(cfg.Postgres)
		return err
	})
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	store := catalog.NewStore(client)
	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("failed to create schema", "error", err)
		os.Exit(1)
	}
	if err := store.Upsert(ctx, movies); err != nil {
		slog.Error("failed to load movies", "error", err)
		os.Exit(1)
	}

	count, err := store.Count(ctx)
	if err != nil {
		slog.Error("failed to count movies", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded into postgres",
		"file", path,
		"loaded", len(movies),
		"total_in_store", count,
	)
}
