package integration

import (
	"strconv"
	"testing"
	"time"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/pkg/config"
	"github.com/FarhanAnis005/movie-search/pkg/postgres"
)

// skipIfNoPostgres skips the test when PostgreSQL is unavailable.
func skipIfNoPostgres(t *testing.T) *postgres.Client {
	t.Helper()
	cfg := config.PostgresConfig{
		Host:            envOrDefault("TEST_POSTGRES_HOST", "localhost"),
		Port:            envOrDefaultInt("TEST_POSTGRES_PORT", 5432),
		Database:        envOrDefault("TEST_POSTGRES_DB", "moviesearch_test"),
		User:            envOrDefault("TEST_POSTGRES_USER", "moviesearch"),
		Password:        envOrDefault("TEST_POSTGRES_PASSWORD", "localdev"),
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
	db, err := postgres.New(cfg)
	if err != nil {
		t.Skipf("skipping integration test: postgres unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func envOrDefaultInt(key string, def int) int {
	if v := envOrDefault(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func TestStoreRoundTrip(t *testing.T) {
	db := skipIfNoPostgres(t)
	store := catalog.NewStore(db)
	ctx := t.Context()

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	rating := 8.7
	movies := []*catalog.Movie{
		{
			ID:            "tt0133093",
			Title:         "The Matrix",
			Type:          "Movie",
			Year:          1999,
			Rating:        &rating,
			ContentRating: "R",
			Genres:        []string{"Action", "Sci-Fi"},
			Actors:        []string{"Keanu Reeves"},
			Published:     "1999-03-31",
		},
		{
			ID:    "tt0000001",
			Title: "Forgotten Reel",
			Year:  1920,
		},
	}
	if err := store.Upsert(ctx, movies); err != nil {
		t.Fatal(err)
	}

	// Upserting again must replace, not duplicate.
	updated := 9.0
	movies[0].Rating = &updated
	if err := store.Upsert(ctx, movies); err != nil {
		t.Fatal(err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count < 2 {
		t.Fatalf("count = %d, want at least 2", count)
	}

	loaded, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	byID := map[string]*catalog.Movie{}
	for _, m := range loaded {
		byID[m.ID] = m
	}
	matrix, ok := byID["tt0133093"]
	if !ok {
		t.Fatal("tt0133093 missing after upsert")
	}
	if v, _ := matrix.RatingValue(); v != 9.0 {
		t.Errorf("rating = %v, want updated 9.0", v)
	}
	if len(matrix.Genres) != 2 || matrix.Genres[0] != "Action" {
		t.Errorf("genres = %v", matrix.Genres)
	}
	if matrix.ContentRating != "R" {
		t.Errorf("content rating = %q, want R", matrix.ContentRating)
	}
	if reel, ok := byID["tt0000001"]; !ok || reel.Rated() {
		t.Errorf("unrated movie must round-trip with a nil rating, got %+v", reel)
	}
}
