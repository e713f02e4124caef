package analytics

import (
	"context"
	"sort"
	"sync"

	"github.com/minisearch/minisearch/pkg/kafka"
)

// Aggregator maintains in-memory rollups of the query-event stream.
type Aggregator struct {
	mu           sync.RWMutex
	totalQueries int64
	byOutcome    map[string]int64
	queryCounts  map[string]int64
	totalLatency int64
	cacheHits    int64
	zeroResults  int64
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		byOutcome:   make(map[string]int64),
		queryCounts: make(map[string]int64),
	}
}

// HandleMessage is a kafka.MessageHandler that decodes and records a
// QueryEvent.
func (a *Aggregator) HandleMessage(ctx context.Context, key, value []byte) error {
	event, err := kafka.DecodeJSON[QueryEvent](value)
	if err != nil {
		return err
	}
	a.Record(event)
	return nil
}

// Record folds one event into the rollups.
func (a *Aggregator) Record(event QueryEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.totalQueries++
	a.byOutcome[event.Outcome]++
	a.totalLatency += event.LatencyMs
	if event.CacheHit {
		a.cacheHits++
	}
	if event.Outcome == "ranked" {
		a.queryCounts[event.Query]++
	} else {
		a.zeroResults++
	}
}

// QueryCount holds a query string and how often it was seen.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Snapshot is a point-in-time view of the rollups.
type Snapshot struct {
	TotalQueries   int64            `json:"total_queries"`
	ByOutcome      map[string]int64 `json:"by_outcome"`
	TopQueries     []QueryCount     `json:"top_queries"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	CacheHitRate   float64          `json:"cache_hit_rate"`
	ZeroResultRate float64          `json:"zero_result_rate"`
}

// Snapshot returns the current rollups with the top n queries.
func (a *Aggregator) Snapshot(topN int) Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	byOutcome := make(map[string]int64, len(a.byOutcome))
	for k, v := range a.byOutcome {
		byOutcome[k] = v
	}

	top := make([]QueryCount, 0, len(a.queryCounts))
	for q, n := range a.queryCounts {
		top = append(top, QueryCount{Query: q, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Query < top[j].Query
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	snap := Snapshot{
		TotalQueries: a.totalQueries,
		ByOutcome:    byOutcome,
		TopQueries:   top,
	}
	if a.totalQueries > 0 {
		snap.AvgLatencyMs = float64(a.totalLatency) / float64(a.totalQueries)
		snap.CacheHitRate = float64(a.cacheHits) / float64(a.totalQueries)
		snap.ZeroResultRate = float64(a.zeroResults) / float64(a.totalQueries)
	}
	return snap
}
