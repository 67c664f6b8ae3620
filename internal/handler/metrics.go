package handler

import (
	"fmt"
	"net/http"

	"github.com/quillpress/quillpress/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "quillpress_posts_created_total %d\n", snap.PostsCreated)
	writeMetric(w, "quillpress_posts_published_total %d\n", snap.PostsPublished)
	writeMetric(w, "quillpress_posts_deleted_total %d\n", snap.PostsDeleted)

	writeMetric(w, "quillpress_feed_cache_hits_total %d\n", snap.FeedCacheHits)
	writeMetric(w, "quillpress_feed_cache_misses_total %d\n", snap.FeedCacheMisses)
	writeMetric(w, "quillpress_feed_assembly_seconds_count %d\n", snap.FeedAssemblyCount)
	writeMetric(w, "quillpress_feed_assembly_seconds_sum %.6f\n", float64(snap.FeedAssemblyTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
