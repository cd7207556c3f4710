// Package server exposes the search engine over HTTP: the /search endpoint,
// the static browser UI, and the wiring to cache, metrics, and analytics.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"websearch/internal/analytics"
	"websearch/internal/index"
	"websearch/internal/query"
	"websearch/internal/search"
	"websearch/internal/search/cache"
	apperrors "websearch/pkg/errors"
	"websearch/pkg/logger"
	"websearch/pkg/metrics"
)

// noMatchSentinel is the literal body returned when a query matches no
// documents. The browser UI distinguishes it from validation failures,
// which are JSON.
const noMatchSentinel = "404"

// Handler serves search requests against a built index.
type Handler struct {
	engine    *search.Engine
	index     *index.Index
	cache     *cache.QueryCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a Handler. queryCache, collector, and m may be nil; the
// handler degrades to uncached, untracked operation.
func New(engine *search.Engine, ix *index.Index, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics) *Handler {
	return &Handler{
		engine:    engine,
		index:     ix,
		cache:     queryCache,
		collector: collector,
		metrics:   m,
		logger:    logger.WithComponent("search-handler"),
	}
}

// Search handles GET /search. The raw (still percent-encoded) query string
// carries the q and algorithm parameters; q keeps its %20 separators all
// the way into the query parser.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	params := query.ParseParams(r.URL.RawQuery)
	rawTerms, ok := params.Term()
	if !ok {
		h.countQuery("invalid")
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	algorithm, _ := params.Algorithm()
	strategy, err := search.SelectStrategy(algorithm)
	if err != nil {
		h.countQuery("invalid")
		h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
		return
	}

	parsed := query.Parse(rawTerms)
	compute := func() ([]search.Result, error) {
		docs, err := h.engine.Search(parsed)
		if err != nil {
			return nil, err
		}
		ranked := search.Rank(docs, parsed, h.index, strategy)
		return search.ToResults(ranked), nil
	}

	var results []search.Result
	cacheHit := false
	if h.cache != nil {
		results, cacheHit, err = h.cache.GetOrCompute(ctx, rawTerms, algorithm, compute)
	} else {
		results, err = compute()
	}
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			log.Error("search execution failed", "query", rawTerms, "error", err)
			h.countQuery("error")
		} else {
			h.countQuery("invalid")
		}
		h.writeError(w, status, err.Error())
		return
	}

	latency := time.Since(start)
	log.Info("search completed",
		"query", rawTerms,
		"algorithm", algorithm,
		"hits", len(results),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	h.recordSearch(ctx, rawTerms, algorithm, len(results), latency, cacheHit)

	if len(results) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, noMatchSentinel)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

// CacheStats handles GET /cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	hits, misses := h.cache.Stats()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"enabled": true,
		"hits":    hits,
		"misses":  misses,
	})
}

// CacheInvalidate handles POST /cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"invalidated": true})
}

func (h *Handler) recordSearch(ctx context.Context, rawQuery, algorithm string, hits int, latency time.Duration, cacheHit bool) {
	if h.metrics != nil {
		outcome := "results"
		if hits == 0 {
			outcome = "no_results"
		}
		h.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()

		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
		}
		if h.cache != nil {
			if cacheHit {
				h.metrics.CacheHitsTotal.Inc()
			} else {
				h.metrics.CacheMissesTotal.Inc()
			}
		}
		h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
		h.metrics.SearchResultsCount.Observe(float64(hits))
	}

	if h.collector != nil {
		eventType := analytics.EventSearch
		if hits == 0 {
			eventType = analytics.EventZeroResult
		}
		h.collector.Track(analytics.SearchEvent{
			Type:      eventType,
			Query:     rawQuery,
			Algorithm: algorithm,
			Hits:      hits,
			LatencyMs: latency.Milliseconds(),
			CacheHit:  cacheHit,
			Timestamp: time.Now().UTC(),
			RequestID: logger.RequestIDFrom(ctx),
		})
	}
}

func (h *Handler) countQuery(outcome string) {
	if h.metrics != nil {
		h.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
