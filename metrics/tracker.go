// Package metrics tracks the lifecycle of processed suggestions in memory:
// shown, accepted, or disposed, with lifespans. Nothing leaves the process.
package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tabmend/logger"
)

const (
	EventShown    = "suggestion_shown"
	EventAccepted = "suggestion_accepted"
	EventDisposed = "suggestion_disposed"
)

// Suggestion is one tracked suggestion instance.
type Suggestion struct {
	ID      string
	Path    string
	ShownAt time.Time
}

// Stats is a point-in-time snapshot of tracker counters.
type Stats struct {
	Shown    int
	Accepted int
	Disposed int
}

// Tracker assigns ids to suggestions and aggregates lifecycle counters.
type Tracker struct {
	mu       sync.Mutex
	open     map[string]*Suggestion
	shown    int
	accepted int
	disposed int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{open: make(map[string]*Suggestion)}
}

// TrackShown registers a freshly produced suggestion and returns its id.
func (t *Tracker) TrackShown(path string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.NewString()
	t.open[id] = &Suggestion{ID: id, Path: path, ShownAt: time.Now()}
	t.shown++

	logger.Debug("metrics: %s id=%s path=%s", EventShown, id, path)
	return id
}

// TrackAccepted marks an open suggestion as accepted by the user.
func (t *Tracker) TrackAccepted(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.open[id]
	if !ok {
		return
	}
	delete(t.open, id)
	t.accepted++

	logger.Debug("metrics: %s id=%s lifespan=%dms", EventAccepted, id, time.Since(s.ShownAt).Milliseconds())
}

// TrackDisposed marks an open suggestion as discarded without acceptance.
func (t *Tracker) TrackDisposed(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.open[id]
	if !ok {
		return
	}
	delete(t.open, id)
	t.disposed++

	logger.Debug("metrics: %s id=%s lifespan=%dms", EventDisposed, id, time.Since(s.ShownAt).Milliseconds())
}

// Stats returns the current counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{Shown: t.shown, Accepted: t.accepted, Disposed: t.disposed}
}

// LogStats writes an info line summarizing the counters.
func (t *Tracker) LogStats() {
	stats := t.Stats()
	logger.Info("metrics: shown=%d accepted=%d disposed=%d", stats.Shown, stats.Accepted, stats.Disposed)
}
