package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncPostCreated is a no-op.
func (n *NoopRecorder) IncPostCreated() {}

// IncPostPublished is a no-op.
func (n *NoopRecorder) IncPostPublished() {}

// IncPostDeleted is a no-op.
func (n *NoopRecorder) IncPostDeleted() {}

// IncFeedCacheHit is a no-op.
func (n *NoopRecorder) IncFeedCacheHit() {}

// IncFeedCacheMiss is a no-op.
func (n *NoopRecorder) IncFeedCacheMiss() {}

// ObserveFeedAssembly is a no-op.
func (n *NoopRecorder) ObserveFeedAssembly(duration time.Duration) {}
