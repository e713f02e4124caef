package analytics

import "time"

// QueryEvent describes one resolved search for the analytics stream. Outcome
// carries the same tag the searcher returned, so downstream consumers can
// aggregate zero-result and degenerate-query rates without re-parsing
// queries.
type QueryEvent struct {
	Outcome      string    `json:"outcome"`
	Query        string    `json:"query"`
	Terms        []string  `json:"terms,omitempty"`
	UnknownTerms []string  `json:"unknown_terms,omitempty"`
	TotalHits    int       `json:"total_hits"`
	Returned     int       `json:"returned"`
	LatencyMs    int64     `json:"latency_ms"`
	CacheHit     bool      `json:"cache_hit"`
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id,omitempty"`
}
