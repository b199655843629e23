// Package handler implements the HTTP surface of the search service: the
// query endpoint, cache management, and response shaping.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/FarhanAnis005/movie-search/internal/analytics"
	"github.com/FarhanAnis005/movie-search/internal/catalog"
	"github.com/FarhanAnis005/movie-search/internal/search"
	"github.com/FarhanAnis005/movie-search/internal/server/cache"
	apperrors "github.com/FarhanAnis005/movie-search/pkg/errors"
	"github.com/FarhanAnis005/movie-search/pkg/logger"
	"github.com/FarhanAnis005/movie-search/pkg/metrics"
	"github.com/FarhanAnis005/movie-search/pkg/tracing"
)

// Resolver is the slice of the search session the handler needs; split out
// so tests can stub it.
type Resolver interface {
	ResolveWithLimit(query string, limit int) *search.Result
	NoResultMessage() string
}

// MovieResult is the display projection of a catalog movie.
type MovieResult struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Year   int      `json:"year,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// SearchResponse is the JSON body of /api/v1/search.
type SearchResponse struct {
	Query       string        `json:"query"`
	Strategy    string        `json:"strategy,omitempty"`
	Results     []MovieResult `json:"results"`
	NoResult    bool          `json:"no_result,omitempty"`
	Message     string        `json:"message,omitempty"`
	Suggestions []MovieResult `json:"suggestions,omitempty"`
}

type Handler struct {
	resolver     Resolver
	cache        *cache.ResultCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New builds a Handler. cache, collector, and metrics may be nil; the
// corresponding features are simply skipped.
func New(resolver Resolver, resultCache *cache.ResultCache, collector *analytics.Collector, m *metrics.Metrics, defaultLimit, maxResults int) *Handler {
	return &Handler{
		resolver:     resolver,
		cache:        resultCache,
		collector:    collector,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed > h.maxResults {
			parsed = h.maxResults
		}
		limit = parsed
	}

	ctx, span := tracing.StartSpan(ctx, "search", logger.RequestIDFromContext(ctx))
	span.SetAttr("query", query)
	span.SetAttr("limit", limit)
	defer func() {
		span.End()
		span.Log()
	}()

	var (
		result   *search.Result
		cacheHit bool
		err      error
	)
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, query, limit, func() (*search.Result, error) {
			return h.resolve(ctx, query, limit), nil
		})
	} else {
		result = h.resolve(ctx, query, limit)
	}
	if err != nil {
		log.Error("search failed", "query", query, "error", err)
		h.writeError(w, apperrors.HTTPStatusCode(err), "search failed")
		return
	}

	latency := time.Since(start)
	h.recordMetrics(result, cacheHit, latency)

	log.Info("search completed",
		"query", query,
		"strategy", result.Strategy,
		"returned", len(result.Movies),
		"no_result", result.NoResult,
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)

	if h.collector != nil {
		h.collector.Track(analytics.SearchEvent{
			Type:      analytics.EventTypeFor(result.NoResult, cacheHit),
			Query:     query,
			Strategy:  result.Strategy,
			Returned:  len(result.Movies),
			NoResult:  result.NoResult,
			LatencyMs: latency.Milliseconds(),
			CacheHit:  cacheHit,
			Timestamp: time.Now().UTC(),
			RequestID: logger.RequestIDFromContext(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, h.buildResponse(result))
}

func (h *Handler) resolve(ctx context.Context, query string, limit int) *search.Result {
	_, span := tracing.StartChildSpan(ctx, "resolve")
	defer span.End()
	result := h.resolver.ResolveWithLimit(query, limit)
	span.SetAttr("strategy", result.Strategy)
	return result
}

func (h *Handler) buildResponse(result *search.Result) *SearchResponse {
	resp := &SearchResponse{
		Query:    result.Query,
		Strategy: result.Strategy,
		Results:  toMovieResults(result.Movies),
	}
	if result.NoResult {
		resp.NoResult = true
		resp.Message = h.resolver.NoResultMessage()
		resp.Suggestions = toMovieResults(result.Fallback)
	}
	return resp
}

func (h *Handler) recordMetrics(result *search.Result, cacheHit bool, latency time.Duration) {
	if h.metrics == nil {
		return
	}
	strategy := result.Strategy
	if result.NoResult {
		strategy = "no_result"
		h.metrics.FallbackServedTotal.Inc()
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(strategy).Inc()
	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
	h.metrics.SearchResultsCount.Observe(float64(len(result.Movies)))
}

func toMovieResults(movies []*catalog.Movie) []MovieResult {
	results := make([]MovieResult, 0, len(movies))
	for _, m := range movies {
		results = append(results, MovieResult{
			ID:     m.ID,
			Title:  m.Title,
			Year:   m.Year,
			Rating: m.Rating,
		})
	}
	return results
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": strconv.FormatFloat(hitRate, 'f', 1, 64) + "%",
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
