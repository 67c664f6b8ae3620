package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	PostsCreated        uint64
	PostsPublished      uint64
	PostsDeleted        uint64
	FeedCacheHits       uint64
	FeedCacheMisses     uint64
	FeedAssemblyCount   uint64
	FeedAssemblyTotalNs int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	postsCreated        uint64
	postsPublished      uint64
	postsDeleted        uint64
	feedCacheHits       uint64
	feedCacheMisses     uint64
	feedAssemblyCount   uint64
	feedAssemblyTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		PostsCreated:        atomic.LoadUint64(&m.postsCreated),
		PostsPublished:      atomic.LoadUint64(&m.postsPublished),
		PostsDeleted:        atomic.LoadUint64(&m.postsDeleted),
		FeedCacheHits:       atomic.LoadUint64(&m.feedCacheHits),
		FeedCacheMisses:     atomic.LoadUint64(&m.feedCacheMisses),
		FeedAssemblyCount:   atomic.LoadUint64(&m.feedAssemblyCount),
		FeedAssemblyTotalNs: atomic.LoadInt64(&m.feedAssemblyTotalNs),
	}
}

// IncPostCreated increments the created-post counter.
func (m *InMemoryRecorder) IncPostCreated() {
	atomic.AddUint64(&m.postsCreated, 1)
}

// IncPostPublished increments the published-post counter.
func (m *InMemoryRecorder) IncPostPublished() {
	atomic.AddUint64(&m.postsPublished, 1)
}

// IncPostDeleted increments the deleted-post counter.
func (m *InMemoryRecorder) IncPostDeleted() {
	atomic.AddUint64(&m.postsDeleted, 1)
}

// IncFeedCacheHit increments the feed cache hit counter.
func (m *InMemoryRecorder) IncFeedCacheHit() {
	atomic.AddUint64(&m.feedCacheHits, 1)
}

// IncFeedCacheMiss increments the feed cache miss counter.
func (m *InMemoryRecorder) IncFeedCacheMiss() {
	atomic.AddUint64(&m.feedCacheMisses, 1)
}

// ObserveFeedAssembly records how long a feed rebuild took.
func (m *InMemoryRecorder) ObserveFeedAssembly(duration time.Duration) {
	atomic.AddUint64(&m.feedAssemblyCount, 1)
	atomic.AddInt64(&m.feedAssemblyTotalNs, duration.Nanoseconds())
}
