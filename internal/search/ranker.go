package search

import (
	"sort"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
)

// Rank deduplicates candidates by ID and returns up to limit movies ordered
// by descending rating. Unrated movies sort below every rated movie rather
// than being dropped, so a candidate set with no ratings still yields
// results. Ties break by title ascending, then ID ascending, so ranking the
// same set twice always produces the same output.
func Rank(candidates []*catalog.Movie, limit int) []*catalog.Movie {
	seen := make(map[string]struct{}, len(candidates))
	ranked := make([]*catalog.Movie, 0, len(candidates))
	for _, m := range candidates {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		ranked = append(ranked, m)
	}

	sort.Slice(ranked, func(i, j int) bool {
		return rankLess(ranked[i], ranked[j])
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func rankLess(a, b *catalog.Movie) bool {
	ar, aRated := a.RatingValue()
	br, bRated := b.RatingValue()
	if aRated != bRated {
		return aRated
	}
	if aRated && ar != br {
		return ar > br
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}

// topRated applies the ranking rule once over the rating-bearing subset of
// the catalog. The search session computes this at construction time and
// serves it as the no-result fallback for its whole lifetime.
func topRated(movies []*catalog.Movie, limit int) []*catalog.Movie {
	rated := make([]*catalog.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Rated() {
			rated = append(rated, m)
		}
	}
	return Rank(rated, limit)
}
