package search

import (
	"testing"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/index"
)

// testSession builds a session over a small fixed catalog:
//
//	Inception (2010, 8.8)      also reachable via the word "dream"
//	The Matrix (1999, 8.7)
//	Matrix Reloaded (2003, 7.2)
//	Space Cop (2016, 5.1)      keyword "space"
//	Opera House (1999, 6.3)    keyword "opera"
//	Mystery Film (1985, none)  unrated
func testSession(t *testing.T, limit int) *Search {
	t.Helper()
	movies := []*catalog.Movie{
		{ID: "tt1", Title: "Inception", Year: 2010, Rating: f(8.8), Description: "a thief enters the dream world"},
		{ID: "tt2", Title: "The Matrix", Year: 1999, Rating: f(8.7), Description: "hacker discovers reality"},
		{ID: "tt3", Title: "Matrix Reloaded", Year: 2003, Rating: f(7.2), Description: "hacker returns"},
		{ID: "tt4", Title: "Space Cop", Year: 2016, Rating: f(5.1), Description: "police officer in space"},
		{ID: "tt5", Title: "Opera House", Year: 1999, Rating: f(6.3), Description: "an opera singer"},
		{ID: "tt6", Title: "Mystery Film", Year: 1985, Description: "nobody rated this"},
	}
	return New(index.Build(movies), limit, "")
}

func f(v float64) *float64 { return &v }

func TestResolveExactMatchWins(t *testing.T) {
	session := testSession(t, 3)

	// "Inception" is also an indexed word token; the exact title match
	// must win before keyword matching is ever consulted.
	result := session.Resolve("Inception")
	if result.NoResult {
		t.Fatal("expected a match")
	}
	if result.Strategy != "exact" {
		t.Fatalf("strategy = %q, want exact", result.Strategy)
	}
	assertOrder(t, result.Movies, "Inception")
}

func TestResolveExactMatchIsCaseInsensitive(t *testing.T) {
	session := testSession(t, 3)
	for _, query := range []string{"inception", "INCEPTION", "iNcEpTiOn", "  the matrix  "} {
		result := session.Resolve(query)
		if result.NoResult || result.Strategy != "exact" {
			t.Fatalf("query %q: strategy = %q, no_result = %v, want exact match", query, result.Strategy, result.NoResult)
		}
	}
}

func TestResolveExactMatchBeatsDateRecognition(t *testing.T) {
	// "1984" is both a movie title and a parsable year; the title match
	// runs first and wins.
	movies := []*catalog.Movie{
		{ID: "tt10", Title: "1984", Year: 1956, Rating: f(7.1)},
		{ID: "tt11", Title: "Some Other Film", Year: 1984, Rating: f(6.0)},
	}
	session := New(index.Build(movies), 3, "")

	result := session.Resolve("1984")
	if result.Strategy != "exact" {
		t.Fatalf("strategy = %q, want exact", result.Strategy)
	}
	assertOrder(t, result.Movies, "1984")
}

func TestResolveYearQuery(t *testing.T) {
	session := testSession(t, 3)

	result := session.Resolve("1999")
	if result.NoResult {
		t.Fatal("expected year matches for 1999")
	}
	if result.Strategy != "date" {
		t.Fatalf("strategy = %q, want date", result.Strategy)
	}
	assertOrder(t, result.Movies, "The Matrix", "Opera House")
}

func TestResolveFullDateQuery(t *testing.T) {
	session := testSession(t, 3)

	result := session.Resolve("2010-07-16")
	if result.NoResult || result.Strategy != "date" {
		t.Fatalf("expected date resolution, got strategy %q no_result %v", result.Strategy, result.NoResult)
	}
	assertOrder(t, result.Movies, "Inception")
}

func TestResolveDateBypassesTextStrategies(t *testing.T) {
	session := testSession(t, 3)

	// 1777 parses as a year but no movie matches; the resolver must not
	// fall through to chunked/keyword matching.
	result := session.Resolve("1777")
	if !result.NoResult {
		t.Fatalf("expected no result for year 1777, got %v via %q", titles(result.Movies), result.Strategy)
	}
	if len(result.Fallback) == 0 {
		t.Fatal("no-result must carry the top-rated fallback")
	}
}

func TestResolveSignedNumberFallsThroughToKeywords(t *testing.T) {
	// "+199" is not a calendar date even though Atoi accepts it; the query
	// must reach the keyword strategy, where its digit token has a hit.
	movies := []*catalog.Movie{
		{ID: "tt20", Title: "Precinct Story", Year: 2005, Rating: f(6.5), Description: "officers of the 199 precinct"},
	}
	session := New(index.Build(movies), 3, "")

	result := session.Resolve("+199")
	if result.NoResult {
		t.Fatal("expected keyword fall-through, got no result")
	}
	if result.Strategy != "keyword" {
		t.Fatalf("strategy = %q, want keyword", result.Strategy)
	}
	assertOrder(t, result.Movies, "Precinct Story")
}

func TestResolveChunkedMatch(t *testing.T) {
	session := testSession(t, 3)

	// "Matrix" is not an exact title, not a date; substring matching
	// over titles should find both Matrix movies, best-rated first.
	result := session.Resolve("Matrix")
	if result.Strategy != "chunked" {
		t.Fatalf("strategy = %q, want chunked", result.Strategy)
	}
	assertOrder(t, result.Movies, "The Matrix", "Matrix Reloaded")
}

func TestResolveKeywordUnionDeduplicated(t *testing.T) {
	session := testSession(t, 3)

	// No exact or substring title match; "space" and "opera" hit
	// different movies through the word index.
	result := session.Resolve("space opera")
	if result.Strategy != "keyword" {
		t.Fatalf("strategy = %q, want keyword", result.Strategy)
	}
	assertOrder(t, result.Movies, "Opera House", "Space Cop")

	seen := map[string]bool{}
	for _, m := range result.Movies {
		if seen[m.ID] {
			t.Fatalf("duplicate movie %s in results", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestResolveNoResultCarriesFallback(t *testing.T) {
	session := testSession(t, 3)

	result := session.Resolve("zzzznomatch")
	if !result.NoResult {
		t.Fatalf("expected no result, got %v", titles(result.Movies))
	}
	// Fallback is the precomputed global top-rated list.
	assertOrder(t, result.Fallback, "Inception", "The Matrix", "Matrix Reloaded")
}

func TestResolveEmptyQuery(t *testing.T) {
	session := testSession(t, 3)
	for _, query := range []string{"", "   ", "\t\n"} {
		result := session.Resolve(query)
		if !result.NoResult {
			t.Fatalf("query %q: expected no result, got %v via %q", query, titles(result.Movies), result.Strategy)
		}
	}
}

func TestResolveRespectsLimit(t *testing.T) {
	session := testSession(t, 1)

	result := session.Resolve("1999")
	if len(result.Movies) != 1 {
		t.Fatalf("got %d movies, want 1", len(result.Movies))
	}
	assertOrder(t, result.Movies, "The Matrix")
}

func TestResolveWithLimitOverride(t *testing.T) {
	session := testSession(t, 1)

	result := session.ResolveWithLimit("1999", 2)
	assertOrder(t, result.Movies, "The Matrix", "Opera House")
}

func TestTopRatedPrecomputedOnce(t *testing.T) {
	session := testSession(t, 2)

	first := session.TopRated()
	second := session.Resolve("zzzznomatch").Fallback
	if len(first) != 2 {
		t.Fatalf("top-rated length = %d, want 2", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("fallback should be the same precomputed slice on every query")
		}
	}
}

func TestByYear(t *testing.T) {
	session := testSession(t, 3)

	result := session.ByYear(1999)
	if result.NoResult {
		t.Fatal("expected matches for 1999")
	}
	assertOrder(t, result.Movies, "The Matrix", "Opera House")

	missing := session.ByYear(1900)
	if !missing.NoResult {
		t.Fatalf("expected no result for 1900, got %v", titles(missing.Movies))
	}
}

func TestDefaultsApplied(t *testing.T) {
	session := testSession(t, 0)
	if session.Limit() != DefaultLimit {
		t.Fatalf("limit = %d, want default %d", session.Limit(), DefaultLimit)
	}
	if session.NoResultMessage() != DefaultNoResultMessage {
		t.Fatalf("message = %q, want default %q", session.NoResultMessage(), DefaultNoResultMessage)
	}
}

func TestParseQueryDate(t *testing.T) {
	cases := []struct {
		query string
		year  int
		ok    bool
	}{
		{"1999", 1999, true},
		{" 2010 ", 2010, true},
		{"2010-07-16", 2010, true},
		{"2010-13-40", 0, false},
		{"199", 0, false},
		{"19999", 0, false},
		{"+199", 0, false},
		{"-123", 0, false},
		{"+1999", 0, false},
		{"abcd", 0, false},
		{"1a99", 0, false},
		{"16/07/2010", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		year, ok := ParseQueryDate(tc.query)
		if ok != tc.ok || year != tc.year {
			t.Errorf("ParseQueryDate(%q) = (%d, %v), want (%d, %v)", tc.query, year, ok, tc.year, tc.ok)
		}
	}
}
