package search

import (
	"strconv"
	"strings"
	"time"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/index"
)

// Strategy is one matcher in the resolution chain. claimed=false means the
// strategy does not recognize the query and the resolver moves to the next
// one. claimed=true with an empty candidate set is terminal: the date
// strategy claims every recognizable date even when no movie matches its
// year, which is what stops a date query from falling through to the text
// strategies.
type Strategy interface {
	Name() string
	Match(query string) (candidates []*catalog.Movie, claimed bool)
}

// exactStrategy matches the whole query against the normalized-title index.
type exactStrategy struct {
	ix *index.Index
}

func (exactStrategy) Name() string { return "exact" }

func (s exactStrategy) Match(query string) ([]*catalog.Movie, bool) {
	if strings.TrimSpace(query) == "" {
		return nil, false
	}
	movies := s.ix.ByTitle(query)
	return movies, len(movies) > 0
}

// dateStrategy recognizes calendar dates and delegates to the year index.
type dateStrategy struct {
	ix *index.Index
}

func (dateStrategy) Name() string { return "date" }

func (s dateStrategy) Match(query string) ([]*catalog.Movie, bool) {
	year, ok := ParseQueryDate(query)
	if !ok {
		return nil, false
	}
	return s.ix.ByYear(year), true
}

// ParseQueryDate extracts a year from a query that is entirely a calendar
// date: strict "YYYY-MM-DD" or a bare run of exactly 4 digits. Anything else,
// including signed numbers like "+199" that Atoi would accept, is a negative
// recognition result, not an error.
func ParseQueryDate(query string) (int, bool) {
	query = strings.TrimSpace(query)
	if t, err := time.Parse("2006-01-02", query); err == nil {
		return t.Year(), true
	}
	if len(query) != 4 {
		return 0, false
	}
	for _, r := range query {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, _ := strconv.Atoi(query)
	return year, true
}

// chunkedStrategy matches the query as a substring of movie titles. Weaker
// than an exact title match, stronger than unioning independent tokens.
type chunkedStrategy struct {
	ix *index.Index
}

func (chunkedStrategy) Name() string { return "chunked" }

func (s chunkedStrategy) Match(query string) ([]*catalog.Movie, bool) {
	needle := index.NormalizeTitle(query)
	if needle == "" {
		return nil, false
	}
	seen := make(map[string]struct{})
	var matched []*catalog.Movie
	for _, m := range s.ix.Movies() {
		if !strings.Contains(index.NormalizeTitle(m.Title), needle) {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		matched = append(matched, m)
	}
	return matched, len(matched) > 0
}

// keywordStrategy unions the word-index hits of every query token.
type keywordStrategy struct {
	ix *index.Index
}

func (keywordStrategy) Name() string { return "keyword" }

func (s keywordStrategy) Match(query string) ([]*catalog.Movie, bool) {
	seen := make(map[string]struct{})
	var matched []*catalog.Movie
	for _, token := range index.Tokenize(query) {
		for _, m := range s.ix.Lookup(token) {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			matched = append(matched, m)
		}
	}
	return matched, len(matched) > 0
}
