// Package catalog defines the movie entity and the sources that load it:
// an IMDb-style JSON file and a PostgreSQL store. Movies are immutable once
// loaded; the rest of the system holds read-only references to them.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Movie is a single catalog entry. Rating is nil for unrated movies; a zero
// value is never used to stand in for "no rating". ID is the stable identity
// key used for deduplication everywhere downstream.
type Movie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type,omitempty"`
	Year          int      `json:"year,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	ContentRating string   `json:"content_rating,omitempty"`
	Description   string   `json:"description,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Actors        []string `json:"actors,omitempty"`
	Directors     []string `json:"directors,omitempty"`
	Creators      []string `json:"creators,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	URL           string   `json:"url,omitempty"`
	Published     string   `json:"published,omitempty"`
}

// Rated reports whether the movie carries a rating value.
func (m *Movie) Rated() bool {
	return m.Rating != nil
}

// RatingValue returns the rating, or 0 with ok=false when unrated.
func (m *Movie) RatingValue() (float64, bool) {
	if m.Rating == nil {
		return 0, false
	}
	return *m.Rating, true
}

var imdbIDPattern = regexp.MustCompile(`tt\d+`)

// DeriveID produces a stable identity key for a movie. IMDb URLs carry a
// ttNNNNNNN identifier; when absent the key falls back to a normalized
// title+year slug.
func DeriveID(url, title string, year int) string {
	if id := imdbIDPattern.FindString(url); id != "" {
		return id
	}
	slug := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	if year > 0 {
		return fmt.Sprintf("%s-%d", slug, year)
	}
	return slug
}

// ParseYear extracts the release year from a published-date string in
// "YYYY-MM-DD" or bare "YYYY" form. It returns 0 when the string carries no
// recognizable year.
func ParseYear(published string) int {
	published = strings.TrimSpace(published)
	if published == "" {
		return 0
	}
	if t, err := time.Parse("2006-01-02", published); err == nil {
		return t.Year()
	}
	if len(published) == 4 {
		if y, err := strconv.Atoi(published); err == nil {
			return y
		}
	}
	return 0
}
