// Command moviesearch is an interactive movie search shell. It loads a JSON
// catalog, builds the in-memory index, and resolves queries from stdin until
// the user types "exit". Typing "--configure" adjusts the result limit and
// no-result message for the rest of the session.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/index"
	"github.com/FarhanAnis005/movie-search/internal/search"
	"github.com/FarhanAnis005/movie-search/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "movies.json", "path to the JSON movie catalog")
	limit := flag.Int("limit", search.DefaultLimit, "number of results to display")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logger.Setup(*logLevel, "text")

	movies, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Total %d movies loaded.\n", len(movies))

	ix := index.Build(movies)
	session := search.New(ix, *limit, "")

	fmt.Println("\n[INFO] Type 'exit' to quit.")
	fmt.Println("[INFO] Type '--configure' to open the configuration menu.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter your search query or year: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(query) {
		case "exit":
			fmt.Println("\n[INFO] Exiting.")
			return
		case "--configure":
			session = configure(scanner, ix, session)
			continue
		}

		printResult(session, session.Resolve(query))
		fmt.Println("________________________________________________________________")
	}
}

// configure rebuilds the session with user-supplied settings; anything left
// blank keeps its current value.
func configure(scanner *bufio.Scanner, ix *index.Index, current *search.Search) *search.Search {
	fmt.Println("\n*** Configuration ***")

	limit := current.Limit()
	fmt.Printf("\nNumber of results to display (current %d): ", limit)
	if scanner.Scan() {
		if n, err := strconv.Atoi(strings.TrimSpace(scanner.Text())); err == nil && n > 0 {
			limit = n
		}
	}

	message := current.NoResultMessage()
	fmt.Printf("\nMessage to display when nothing matches (current %q): ", message)
	if scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			message = text
		}
	}

	fmt.Println("\nConfiguration updated!")
	return search.New(ix, limit, message)
}

func printResult(session *search.Search, result *search.Result) {
	if result.NoResult {
		fmt.Println(session.NoResultMessage())
		fmt.Println("Showing top-rated movies instead:")
		printMovies(result.Fallback)
		return
	}
	fmt.Printf("\nTop %d result(s):\n", len(result.Movies))
	printMovies(result.Movies)
}

func printMovies(movies []*catalog.Movie) {
	for _, m := range movies {
		line := "\t" + m.Title
		if m.Year > 0 {
			line += fmt.Sprintf(" (%d)", m.Year)
		}
		if rating, ok := m.RatingValue(); ok {
			line += fmt.Sprintf(" [%.1f]", rating)
		}
		fmt.Println(line)
	}
}
