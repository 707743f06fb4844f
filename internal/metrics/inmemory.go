package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	PostCacheHits       uint64
	PostCacheMisses     uint64
	ListDurationCount   uint64
	ListDurationTotalNs int64
	PostsCreated        uint64
	PostsUpdated        uint64
	PostsDeleted        uint64
	RemindersCreated    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	postCacheHits       uint64
	postCacheMisses     uint64
	listDurationCount   uint64
	listDurationTotalNs int64
	postsCreated        uint64
	postsUpdated        uint64
	postsDeleted        uint64
	remindersCreated    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		PostCacheHits:       atomic.LoadUint64(&m.postCacheHits),
		PostCacheMisses:     atomic.LoadUint64(&m.postCacheMisses),
		ListDurationCount:   atomic.LoadUint64(&m.listDurationCount),
		ListDurationTotalNs: atomic.LoadInt64(&m.listDurationTotalNs),
		PostsCreated:        atomic.LoadUint64(&m.postsCreated),
		PostsUpdated:        atomic.LoadUint64(&m.postsUpdated),
		PostsDeleted:        atomic.LoadUint64(&m.postsDeleted),
		RemindersCreated:    atomic.LoadUint64(&m.remindersCreated),
	}
}

// IncPostCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncPostCacheHit() {
	atomic.AddUint64(&m.postCacheHits, 1)
}

// IncPostCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncPostCacheMiss() {
	atomic.AddUint64(&m.postCacheMisses, 1)
}

// ObserveListDuration records list query duration.
func (m *InMemoryRecorder) ObserveListDuration(duration time.Duration) {
	atomic.AddUint64(&m.listDurationCount, 1)
	atomic.AddInt64(&m.listDurationTotalNs, duration.Nanoseconds())
}

// IncPostCreated increments the post created counter.
func (m *InMemoryRecorder) IncPostCreated() {
	atomic.AddUint64(&m.postsCreated, 1)
}

// IncPostUpdated increments the post updated counter.
func (m *InMemoryRecorder) IncPostUpdated() {
	atomic.AddUint64(&m.postsUpdated, 1)
}

// IncPostDeleted increments the post deleted counter.
func (m *InMemoryRecorder) IncPostDeleted() {
	atomic.AddUint64(&m.postsDeleted, 1)
}

// IncReminderCreated increments the reminder created counter.
func (m *InMemoryRecorder) IncReminderCreated() {
	atomic.AddUint64(&m.remindersCreated, 1)
}
