package search

import "github.com/FarhanAnis005/movie-search/internal/catalog"

// Result is the outcome of resolving one query. Either Movies holds the
// ranked matches and Strategy names the strategy that produced them, or
// NoResult is set and Fallback carries the session's precomputed top-rated
// list for the caller to suggest instead.
type Result struct {
	Query    string           `json:"query"`
	Strategy string           `json:"strategy,omitempty"`
	Movies   []*catalog.Movie `json:"movies,omitempty"`
	NoResult bool             `json:"no_result,omitempty"`
	Fallback []*catalog.Movie `json:"fallback,omitempty"`
}
