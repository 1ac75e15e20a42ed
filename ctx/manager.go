// Package ctx maintains per-document completion context: a capped sliding
// window of recent lines, a clipped neighborhood snapshot around the cursor,
// an append-only log of accepted suggestions, and granular edit history.
package ctx

import (
	"tabmend/types"
	"tabmend/utils"
)

const (
	// DefaultWindowSize is the sliding-window line cap.
	DefaultWindowSize = 250

	// DefaultSnapshotRadius is the neighborhood line radius around the cursor.
	DefaultSnapshotRadius = 25
)

// Config carries the manager's tunables. Zero values select defaults; an
// AcceptedLogCap of 0 keeps the log unbounded.
type Config struct {
	WindowSize     int
	SnapshotRadius int
	AcceptedLogCap int
	MaxDiffTokens  int // token budget for edit history in the bundle (0 = no limit)
}

// Manager owns the context state for one document. It is mutated only by its
// own recompute/track methods, invoked sequentially by the orchestration
// layer; recompute is idempotent for identical inputs.
type Manager struct {
	config   Config
	window   []string
	accepted []string
	previous []string
	seeded   bool
	history  []*types.DiffEntry
}

// NewManager creates a Manager with defaults applied.
func NewManager(config Config) *Manager {
	if config.WindowSize <= 0 {
		config.WindowSize = DefaultWindowSize
	}
	if config.SnapshotRadius <= 0 {
		config.SnapshotRadius = DefaultSnapshotRadius
	}
	return &Manager{config: config}
}

// RecomputeWindow replaces the sliding window with the last WindowSize lines
// of the document, in document order, and records granular diff entries
// against the previously seen revision.
func (m *Manager) RecomputeWindow(lines []string) {
	if m.seeded {
		m.history = append(m.history, granularDiffEntries(m.previous, lines)...)
	}
	m.previous = utils.CopyLines(lines)
	m.seeded = true

	start := 0
	if len(lines) > m.config.WindowSize {
		start = len(lines) - m.config.WindowSize
	}
	m.window = utils.CopyLines(lines[start:])
}

// Snapshot returns the lines within the configured radius of cursorLine,
// clipped to document bounds. Out-of-range cursors yield an empty snapshot,
// never an error.
func (m *Manager) Snapshot(lines []string, cursorLine int) []string {
	start := cursorLine - m.config.SnapshotRadius
	if start < 0 {
		start = 0
	}
	end := cursorLine + m.config.SnapshotRadius
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return nil
	}
	return utils.CopyLines(lines[start:end])
}

// TrackAccepted appends an accepted suggestion to the log. The log is never
// rewritten; when a cap is configured the oldest entries are dropped once the
// cap is exceeded.
func (m *Manager) TrackAccepted(text string) {
	m.accepted = append(m.accepted, text)
	if limit := m.config.AcceptedLogCap; limit > 0 && len(m.accepted) > limit {
		m.accepted = m.accepted[len(m.accepted)-limit:]
	}
}

// Window returns a copy of the current sliding window.
func (m *Manager) Window() []string {
	return utils.CopyLines(m.window)
}

// Accepted returns a copy of the accepted-suggestion log.
func (m *Manager) Accepted() []string {
	return utils.CopyLines(m.accepted)
}

// History returns a copy of the recorded edit history.
func (m *Manager) History() []*types.DiffEntry {
	if m.history == nil {
		return nil
	}
	result := make([]*types.DiffEntry, len(m.history))
	copy(result, m.history)
	return result
}

// Bundle recomputes the window and snapshot against the given document state
// and composes the read-only context view. A nil document yields an empty
// bundle with the log left untouched.
func (m *Manager) Bundle(lines []string, cursorLine int) *types.Bundle {
	if lines == nil {
		return &types.Bundle{}
	}

	m.RecomputeWindow(lines)

	edits := m.History()
	if m.config.MaxDiffTokens > 0 {
		edits = utils.TrimDiffEntries(edits, m.config.MaxDiffTokens)
	}

	return &types.Bundle{
		RecentLines:         m.Window(),
		AcceptedSuggestions: m.Accepted(),
		SurroundingContext:  m.Snapshot(lines, cursorLine),
		RecentEdits:         edits,
	}
}
