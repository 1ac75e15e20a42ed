package types

// Position is a cursor location in a document.
// Line is 0-indexed, Col is a 0-indexed byte offset within the line.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// IndentSettings carries the editor's indentation configuration.
type IndentSettings struct {
	InsertSpaces bool `json:"insert_spaces"`
	TabSize      int  `json:"tab_size"`
}

// Unit returns one indentation step: TabSize spaces when InsertSpaces is set,
// otherwise a single tab character.
func (s IndentSettings) Unit() string {
	if s.InsertSpaces {
		n := s.TabSize
		if n <= 0 {
			n = 4
		}
		unit := make([]byte, n)
		for i := range unit {
			unit[i] = ' '
		}
		return string(unit)
	}
	return "\t"
}

// Decision is the outcome of rule evaluation for one line prefix.
// The zero value means "insert inline with no added indentation".
type Decision struct {
	InsertOnNewLine bool
	Indentation     string
}

// Result is the final insertable text plus the single point at which it must
// be spliced. The anchor always equals the original cursor position; only the
// text (including any leading newline and indentation) varies.
type Result struct {
	Text         string   `json:"text"`
	Anchor       Position `json:"anchor"`
	SuggestionID string   `json:"suggestion_id,omitempty"`
}

// DiffEntry records one contiguous edit as structured before/after content.
type DiffEntry struct {
	// Original is the content before the change (the text that was replaced or deleted)
	Original string `json:"original"`
	// Updated is the content after the change (the new text)
	Updated string `json:"updated"`
}

// GetOriginal returns the original content (implements utils.DiffEntry)
func (d *DiffEntry) GetOriginal() string { return d.Original }

// GetUpdated returns the updated content (implements utils.DiffEntry)
func (d *DiffEntry) GetUpdated() string { return d.Updated }

// Bundle is the composed, read-only context view handed to the prompt layer.
// It is rebuilt on demand and never persisted.
type Bundle struct {
	// RecentLines is the capped sliding window over the active document,
	// most-recent-last, document order preserved.
	RecentLines []string `json:"recent_lines"`
	// AcceptedSuggestions is the append-only log of completions the user took.
	AcceptedSuggestions []string `json:"accepted_suggestions"`
	// SurroundingContext is the clipped neighborhood around the cursor.
	SurroundingContext []string `json:"surrounding_context"`
	// RecentEdits are granular before/after records of recent document changes.
	RecentEdits []*DiffEntry `json:"recent_edits,omitempty"`
}

// Empty reports whether the bundle carries no context at all.
func (b *Bundle) Empty() bool {
	return b == nil || (len(b.RecentLines) == 0 &&
		len(b.AcceptedSuggestions) == 0 &&
		len(b.SurroundingContext) == 0 &&
		len(b.RecentEdits) == 0)
}
