package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/FarhanAnis005/movie-search/pkg/postgres"
)

// Store persists and loads the movie catalog from PostgreSQL. It exists so a
// search session can be constructed from a database instead of a JSON file;
// the search core itself never touches it.
type Store struct {
	client *postgres.Client
}

func NewStore(client *postgres.Client) *Store {
	return &Store{client: client}
}

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	type           TEXT NOT NULL DEFAULT '',
	year           INT NOT NULL DEFAULT 0,
	rating         DOUBLE PRECISION,
	content_rating TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	genres         TEXT[] NOT NULL DEFAULT '{}',
	actors         TEXT[] NOT NULL DEFAULT '{}',
	directors      TEXT[] NOT NULL DEFAULT '{}',
	creators       TEXT[] NOT NULL DEFAULT '{}',
	duration       TEXT NOT NULL DEFAULT '',
	url            TEXT NOT NULL DEFAULT '',
	published      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_movies_year ON movies (year);
`

// EnsureSchema creates the movies table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.client.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating movies schema: %w", err)
	}
	return nil
}

// Upsert writes the given movies inside a single transaction, replacing any
// rows with the same ID.
func (s *Store) Upsert(ctx context.Context, movies []*Movie) error {
	return s.client.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO movies
				(id, title, type, year, rating, content_rating, description,
				 genres, actors, directors, creators, duration, url, published)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				type = EXCLUDED.type,
				year = EXCLUDED.year,
				rating = EXCLUDED.rating,
				content_rating = EXCLUDED.content_rating,
				description = EXCLUDED.description,
				genres = EXCLUDED.genres,
				actors = EXCLUDED.actors,
				directors = EXCLUDED.directors,
				creators = EXCLUDED.creators,
				duration = EXCLUDED.duration,
				url = EXCLUDED.url,
				published = EXCLUDED.published`)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()

		for _, m := range movies {
			var rating sql.NullFloat64
			if m.Rating != nil {
				rating = sql.NullFloat64{Float64: *m.Rating, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx,
				m.ID, m.Title, m.Type, m.Year, rating, m.ContentRating, m.Description,
				pq.Array(m.Genres), pq.Array(m.Actors),
				pq.Array(m.Directors), pq.Array(m.Creators),
				m.Duration, m.URL, m.Published,
			); err != nil {
				return fmt.Errorf("upserting movie %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

// List loads the full catalog ordered by ID.
func (s *Store) List(ctx context.Context) ([]*Movie, error) {
	rows, err := s.client.DB.QueryContext(ctx, `
		SELECT id, title, type, year, rating, content_rating, description,
		       genres, actors, directors, creators, duration, url, published
		FROM movies
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		var (
			m      Movie
			rating sql.NullFloat64
		)
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Type, &m.Year, &rating, &m.ContentRating, &m.Description,
			pq.Array(&m.Genres), pq.Array(&m.Actors),
			pq.Array(&m.Directors), pq.Array(&m.Creators),
			&m.Duration, &m.URL, &m.Published,
		); err != nil {
			return nil, fmt.Errorf("scanning movie row: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			m.Rating = &v
		}
		movies = append(movies, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movie rows: %w", err)
	}
	return movies, nil
}

// Count returns the number of movies in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.client.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}
	return n, nil
}
