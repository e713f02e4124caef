// Package handler exposes the searcher over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/minisearch/minisearch/internal/analytics"
	"github.com/minisearch/minisearch/internal/indexer"
	"github.com/minisearch/minisearch/internal/searcher"
	"github.com/minisearch/minisearch/internal/searcher/cache"
	apperrors "github.com/minisearch/minisearch/pkg/errors"
	"github.com/minisearch/minisearch/pkg/logger"
	"github.com/minisearch/minisearch/pkg/metrics"
)

// Handler serves search, stats, and cache-management endpoints.
type Handler struct {
	searcher     *searcher.Searcher
	engine       *indexer.Engine
	cache        *cache.QueryCache
	collector    *analytics.Collector
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New creates a Handler. cache, collector, and m may be nil; the features
// they back are simply disabled.
func New(
	s *searcher.Searcher,
	engine *indexer.Engine,
	queryCache *cache.QueryCache,
	collector *analytics.Collector,
	m *metrics.Metrics,
	defaultLimit, maxResults int,
) *Handler {
	return &Handler{
		searcher:     s,
		engine:       engine,
		cache:        queryCache,
		collector:    collector,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       logger.WithComponent("search-handler"),
	}
}

// Search resolves ?q= and writes the tagged outcome. A missing or blank q is
// not an HTTP error: it maps to the empty-query outcome like any other
// degenerate input.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
				"limit %q must be a positive integer", limitStr))
			return
		}
		limit = parsed
	}
	if h.maxResults > 0 && (limit == 0 || limit > h.maxResults) {
		limit = h.maxResults
	}

	var outcome *searcher.Outcome
	cacheHit := false
	if h.cache != nil {
		outcome, cacheHit = h.cache.GetOrCompute(ctx, query, func() *searcher.Outcome {
			return h.searcher.Search(query)
		})
	} else {
		outcome = h.searcher.Search(query)
	}

	totalHits := len(outcome.Results)
	response := *outcome
	if limit > 0 && len(response.Results) > limit {
		response.Results = response.Results[:limit]
	}

	latency := time.Since(start)
	log.Info("search completed",
		"query", query,
		"outcome", outcome.Kind,
		"total_hits", totalHits,
		"returned", len(response.Results),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)

	if h.metrics != nil {
		h.metrics.SearchesTotal.WithLabelValues(string(outcome.Kind)).Inc()
		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		if h.cache == nil {
			cacheStatus = "disabled"
		}
		h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
		h.metrics.SearchResultsCount.Observe(float64(len(response.Results)))
		if h.cache != nil {
			if cacheHit {
				h.metrics.CacheHitsTotal.Inc()
			} else {
				h.metrics.CacheMissesTotal.Inc()
			}
		}
	}

	if h.collector != nil {
		h.collector.Track(analytics.QueryEvent{
			Outcome:      string(outcome.Kind),
			Query:        query,
			Terms:        outcome.Terms,
			UnknownTerms: outcome.UnknownTerms,
			TotalHits:    totalHits,
			Returned:     len(response.Results),
			LatencyMs:    latency.Milliseconds(),
			CacheHit:     cacheHit,
			Timestamp:    time.Now().UTC(),
			RequestID:    logger.RequestIDFromContext(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, &response)
}

// Stats writes the index statistics snapshot.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.Stats())
}

// CacheStats reports query-cache hit/miss counters.
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
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate clears all cached outcomes.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable,
			"caching is disabled"))
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError,
			"cache invalidation failed"))
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

// writeError renders err as a JSON error body. AppErrors keep their message
// and status; anything else maps through the sentinel status table.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	h.writeJSON(w, apperrors.HTTPStatusCode(err), map[string]string{"error": message})
}
