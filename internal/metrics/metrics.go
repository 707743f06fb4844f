// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Post read metrics
	IncPostCacheHit()
	IncPostCacheMiss()
	ObserveListDuration(duration time.Duration)

	// Mutation metrics
	IncPostCreated()
	IncPostUpdated()
	IncPostDeleted()
	IncReminderCreated()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
