package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	apperrors "github.com/FarhanAnis005/movie-search/pkg/errors"
)

// rawMovie mirrors the IMDb JSON-LD record shape on disk.
type rawMovie struct {
	Type            string       `json:"@type"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Actor           []rawEntity  `json:"actor"`
	Director        []rawEntity  `json:"director"`
	Creator         []rawEntity  `json:"creator"`
	Genre           []string     `json:"genre"`
	AggregateRating *rawRating   `json:"aggregateRating"`
	ContentRating   string       `json:"contentRating"`
	Duration        string       `json:"duration"`
	URL             string       `json:"url"`
	DatePublished   string       `json:"datePublished"`
}

// rawEntity covers both Person and Organization credit records.
type rawEntity struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type rawRating struct {
	RatingValue *float64 `json:"ratingValue"`
	RatingCount int      `json:"ratingCount"`
	BestRating  float64  `json:"bestRating"`
	WorstRating float64  `json:"worstRating"`
}

// LoadFile reads an IMDb-style JSON catalog and returns the parsed movies.
// Records without a name are skipped and logged rather than failing the
// whole load.
func LoadFile(path string) ([]*Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]*Movie, error) {
	var raw []rawMovie
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog JSON: %w", err)
	}

	log := slog.Default().With("component", "catalog-loader")
	movies := make([]*Movie, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		m, ok := convertMovie(r)
		if !ok {
			skipped++
			continue
		}
		movies = append(movies, m)
	}
	if skipped > 0 {
		log.Warn("skipped catalog records without a name", "skipped", skipped)
	}
	if len(movies) == 0 {
		return nil, apperrors.New(apperrors.ErrCatalogEmpty, http.StatusServiceUnavailable, "catalog contains no usable movies")
	}
	log.Info("catalog loaded", "movies", len(movies))
	return movies, nil
}

func convertMovie(r rawMovie) (*Movie, bool) {
	if r.Name == "" {
		return nil, false
	}
	year := ParseYear(r.DatePublished)
	m := &Movie{
		ID:            DeriveID(r.URL, r.Name, year),
		Title:         r.Name,
		Type:          r.Type,
		Year:          year,
		ContentRating: r.ContentRating,
		Description:   r.Description,
		Genres:        r.Genre,
		Actors:        entityNames(r.Actor),
		Directors:     entityNames(r.Director),
		Creators:      entityNames(r.Creator),
		Duration:      r.Duration,
		URL:           r.URL,
		Published:     r.DatePublished,
	}
	if r.AggregateRating != nil && r.AggregateRating.RatingValue != nil {
		v := *r.AggregateRating.RatingValue
		m.Rating = &v
	}
	return m, true
}

func entityNames(entities []rawEntity) []string {
	if len(entities) == 0 {
		return nil
	}
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names
}
