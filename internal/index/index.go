// Package index builds the read-only catalog indexes the search session
// consults: word token → movies, release year → movies, and normalized
// title → movies. An Index is immutable after Build returns; concurrent
// readers need no locking.
package index

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
)

type Index struct {
	words  map[string][]*catalog.Movie
	years  map[int][]*catalog.Movie
	titles map[string][]*catalog.Movie
	movies []*catalog.Movie
}

// Build constructs all three mappings over the given catalog. A movie is
// entered at most once per word key or year bucket, keyed by its ID.
func Build(movies []*catalog.Movie) *Index {
	ix := &Index{
		words:  make(map[string][]*catalog.Movie),
		years:  make(map[int][]*catalog.Movie),
		titles: make(map[string][]*catalog.Movie),
		movies: movies,
	}
	for _, m := range movies {
		ix.indexWords(m)
		ix.indexYear(m)
		ix.indexTitle(m)
	}
	slog.Default().With("component", "index").Info("index built",
		"movies", len(movies),
		"terms", len(ix.words),
		"years", len(ix.years),
	)
	return ix
}

// indexWords adds the movie under every token of its searchable text:
// title, description, credits, genres, and type.
func (ix *Index) indexWords(m *catalog.Movie) {
	seen := make(map[string]struct{})
	fields := []string{
		m.Title,
		m.Description,
		strings.Join(m.Actors, " "),
		strings.Join(m.Directors, " "),
		strings.Join(m.Creators, " "),
		strings.Join(m.Genres, " "),
		m.Type,
	}
	for _, field := range fields {
		for _, token := range Tokenize(field) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			ix.words[token] = append(ix.words[token], m)
		}
	}
}

func (ix *Index) indexYear(m *catalog.Movie) {
	if m.Year == 0 {
		return
	}
	ix.years[m.Year] = append(ix.years[m.Year], m)
}

func (ix *Index) indexTitle(m *catalog.Movie) {
	key := NormalizeTitle(m.Title)
	if key == "" {
		return
	}
	ix.titles[key] = append(ix.titles[key], m)
}

// Lookup returns the movies indexed under the given word token, or nil.
// Callers must not mutate the returned slice.
func (ix *Index) Lookup(token string) []*catalog.Movie {
	return ix.words[token]
}

// ByYear returns the movies released in the given year, or nil.
func (ix *Index) ByYear(year int) []*catalog.Movie {
	return ix.years[year]
}

// ByTitle returns the movies whose normalized title equals the normalized
// form of title, or nil.
func (ix *Index) ByTitle(title string) []*catalog.Movie {
	return ix.titles[NormalizeTitle(title)]
}

// Movies returns every movie in the catalog.
func (ix *Index) Movies() []*catalog.Movie {
	return ix.movies
}

// TermCount returns the number of distinct word keys.
func (ix *Index) TermCount() int {
	return len(ix.words)
}

// Years returns the indexed release years in ascending order.
func (ix *Index) Years() []int {
	years := make([]int, 0, len(ix.years))
	for y := range ix.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
