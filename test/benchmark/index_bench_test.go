package benchmark

import (
	"fmt"
	"testing"

	"github.com/FarhanAnis005/movie-search/internal/index"
)

// BenchmarkIndexBuild measures building the word, year, and title indexes
// over catalogs of increasing size.
func BenchmarkIndexBuild(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		movies := syntheticCatalog(size)
		b.Run(fmt.Sprintf("movies_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = index.Build(movies)
			}
		})
	}
}

// BenchmarkIndexLookup measures single-token word-index lookups.
func BenchmarkIndexLookup(b *testing.B) {
	ix := index.Build(syntheticCatalog(10000))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ix.Lookup("midnight")
	}
}

func BenchmarkTokenize(b *testing.B) {
	texts := []struct {
		name string
		text string
	}{
		{"title", "The Lord of the Rings: The Return of the King"},
		{"description", "A meek Hobbit from the Shire and eight companions set out on a journey to destroy the powerful One Ring and save Middle-earth from the Dark Lord Sauron."},
	}
	for _, tc := range texts {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = index.Tokenize(tc.text)
			}
		})
	}
}
