package benchmark

import (
	"fmt"
	"testing"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/index"
	"github.com/FarhanAnis005/movie-search/internal/search"
)

// syntheticCatalog builds n movies with varied titles, years, and ratings so
// every strategy has real work to do.
func syntheticCatalog(n int) []*catalog.Movie {
	genres := []string{"Action", "Drama", "Comedy", "Thriller", "Sci-Fi"}
	words := []string{"shadow", "midnight", "return", "empire", "city", "lost", "king", "storm"}
	movies := make([]*catalog.Movie, 0, n)
	for i := 0; i < n; i++ {
		rating := 1.0 + float64(i%90)/10.0
		m := &catalog.Movie{
			ID:          fmt.Sprintf("tt%07d", i),
			Title:       fmt.Sprintf("%s %s %d", words[i%len(words)], words[(i/3)%len(words)], i),
			Year:        1950 + i%75,
			Description: fmt.Sprintf("a story about the %s of the %s", words[i%len(words)], words[(i+1)%len(words)]),
			Genres:      []string{genres[i%len(genres)]},
			Type:        "Movie",
		}
		if i%5 != 0 {
			m.Rating = &rating
		}
		movies = append(movies, m)
	}
	return movies
}

// BenchmarkResolve measures end-to-end query resolution per strategy over
// catalogs of increasing size.
func BenchmarkResolve(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{"exact", "empire midnight 3"},
		{"date_year", "1999"},
		{"date_full", "1999-03-31"},
		{"chunked", "midnight"},
		{"keyword", "storm empire city"},
		{"no_result", "zzzznomatch"},
	}
	for _, size := range []int{100, 1000, 10000} {
		session := search.New(index.Build(syntheticCatalog(size)), 3, "")
		for _, q := range queries {
			b.Run(fmt.Sprintf("movies_%d/%s", size, q.name), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = session.Resolve(q.query)
				}
			})
		}
	}
}

// BenchmarkRank measures ranking alone for growing candidate sets.
func BenchmarkRank(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		candidates := syntheticCatalog(size)
		b.Run(fmt.Sprintf("candidates_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = search.Rank(candidates, 3)
			}
		})
	}
}
