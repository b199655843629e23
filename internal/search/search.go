// Package search resolves free-text and date queries against the in-memory
// catalog index. A Search session tries matching strategies in priority
// order (exact title, calendar date, title substring, keyword union) and
// ranks whichever candidate set wins by descending rating. Sessions are
// read-only after construction and safe for concurrent use.
package search

import (
	"log/slog"
	"strconv"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/index"
)

const (
	DefaultLimit           = 3
	DefaultNoResultMessage = "No results found"
)

// Search is a query-resolution session over one immutable index.
type Search struct {
	ix              *index.Index
	limit           int
	noResultMessage string
	topRatedMovies  []*catalog.Movie
	strategies      []Strategy
	logger          *slog.Logger
}

// New builds a session over ix. limit <= 0 and an empty message select the
// defaults. The top-rated fallback list is computed here, once, and reused
// for every query the session resolves.
func New(ix *index.Index, limit int, noResultMessage string) *Search {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if noResultMessage == "" {
		noResultMessage = DefaultNoResultMessage
	}
	return &Search{
		ix:              ix,
		limit:           limit,
		noResultMessage: noResultMessage,
		topRatedMovies:  topRated(ix.Movies(), limit),
		strategies: []Strategy{
			exactStrategy{ix},
			dateStrategy{ix},
			chunkedStrategy{ix},
			keywordStrategy{ix},
		},
		logger: slog.Default().With("component", "search"),
	}
}

// Resolve answers a single query with the session's result limit.
func (s *Search) Resolve(query string) *Result {
	return s.ResolveWithLimit(query, s.limit)
}

// ResolveWithLimit answers a single query, returning at most limit movies
// (limit <= 0 selects the session limit). Strategies run in priority order;
// the first one that claims the query decides the outcome. An empty claimed
// candidate set (a date with no movies in its year) is a no-result, not a
// reason to try weaker strategies. The fallback list stays the precomputed
// session-lifetime one regardless of the requested limit.
func (s *Search) ResolveWithLimit(query string, limit int) *Result {
	if limit <= 0 {
		limit = s.limit
	}
	for _, strategy := range s.strategies {
		candidates, claimed := strategy.Match(query)
		if !claimed {
			continue
		}
		if len(candidates) == 0 {
			return s.noResult(query)
		}
		ranked := Rank(candidates, limit)
		s.logger.Debug("query resolved",
			"query", query,
			"strategy", strategy.Name(),
			"candidates", len(candidates),
			"returned", len(ranked),
		)
		return &Result{
			Query:    query,
			Strategy: strategy.Name(),
			Movies:   ranked,
		}
	}
	return s.noResult(query)
}

// ByYear returns the ranked top movies released in the given year, or the
// no-result fallback when the year is absent from the index.
func (s *Search) ByYear(year int) *Result {
	query := strconv.Itoa(year)
	movies := s.ix.ByYear(year)
	if len(movies) == 0 {
		return s.noResult(query)
	}
	return &Result{
		Query:    query,
		Strategy: "date",
		Movies:   Rank(movies, s.limit),
	}
}

func (s *Search) noResult(query string) *Result {
	s.logger.Debug("no result", "query", query)
	return &Result{
		Query:    query,
		NoResult: true,
		Fallback: s.topRatedMovies,
	}
}

// Limit returns the session's result limit.
func (s *Search) Limit() int {
	return s.limit
}

// NoResultMessage returns the message the caller should display alongside
// the fallback list.
func (s *Search) NoResultMessage() string {
	return s.noResultMessage
}

// TopRated returns the precomputed session-lifetime top-rated list.
func (s *Search) TopRated() []*catalog.Movie {
	return s.topRatedMovies
}
