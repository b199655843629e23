// Package analytics tracks search traffic. A Collector buffers events and
// publishes them to Kafka; an Aggregator consumes the topic and keeps rolling
// stats (totals, latency percentiles, top queries) served over HTTP.
package analytics

import "time"

type EventType string

const (
	EventSearch    EventType = "search"
	EventCacheHit  EventType = "cache_hit"
	EventCacheMiss EventType = "cache_miss"
	EventNoResult  EventType = "no_result"
)

// EventTypeFor classifies one resolved query: no-result searches are tracked
// under their own type, everything else by how the cache answered.
func EventTypeFor(noResult, cacheHit bool) EventType {
	switch {
	case noResult:
		return EventNoResult
	case cacheHit:
		return EventCacheHit
	default:
		return EventCacheMiss
	}
}

// SearchEvent records one resolved query.
type SearchEvent struct {
	Type      EventType `json:"type"`
	Query     string    `json:"query"`
	Strategy  string    `json:"strategy,omitempty"`
	Returned  int       `json:"returned"`
	NoResult  bool      `json:"no_result"`
	LatencyMs int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}
