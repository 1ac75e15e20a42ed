package engine

import (
	"context"
	"testing"

	"tabmend/assert"
	"tabmend/types"
)

func newTestProcessor(t *testing.T) *PostProcessor {
	t.Helper()
	p, err := NewPostProcessor(Config{})
	assert.NoError(t, err, "construct post-processor")
	return p
}

func spaceIndent() types.IndentSettings {
	return types.IndentSettings{InsertSpaces: true, TabSize: 4}
}

func TestProcess_EmptyCandidateShortCircuits(t *testing.T) {
	p := newTestProcessor(t)

	req := &Request{
		Document:   types.NewDocument("x"),
		Cursor:     types.Position{Line: 0, Col: 1},
		LanguageID: "python",
		Indent:     spaceIndent(),
		Candidate:  "   ",
	}
	result, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "process error")
	assert.Equal(t, "", result.Text, "no insertable text")
	assert.Equal(t, req.Cursor, result.Anchor, "anchor stays at cursor")
	assert.Equal(t, 0, p.Stats().Shown, "empty results are not tracked")
}

func TestProcess_ImportBreaksWithoutIndent(t *testing.T) {
	p := newTestProcessor(t)

	req := &Request{
		Document:   types.NewDocument("import os"),
		Cursor:     types.Position{Line: 0, Col: 9},
		LanguageID: "python",
		Indent:     spaceIndent(),
		Candidate:  "import sys",
	}
	result, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "process error")
	assert.Equal(t, "\nimport sys", result.Text, "break without added indent")
	assert.Equal(t, req.Cursor, result.Anchor, "anchor stays at cursor")
}

func TestProcess_ImportStatementInsertedWhole(t *testing.T) {
	p := newTestProcessor(t)

	req := &Request{
		Document:   types.NewDocument("import "),
		Cursor:     types.Position{Line: 0, Col: 7},
		LanguageID: "javascript",
		Indent:     spaceIndent(),
		Candidate:  "import React from 'react';",
	}
	result, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "process error")
	assert.Equal(t, "\nimport React from 'react';", result.Text, "statement kept whole on its own line")
}

func TestProcess_ControlFlowBreaksWithIndent(t *testing.T) {
	p := newTestProcessor(t)

	req := &Request{
		Document:   types.NewDocument("  if (x > 0) "),
		Cursor:     types.Position{Line: 0, Col: 13},
		LanguageID: "javascript",
		Indent:     spaceIndent(),
		Candidate:  "return x;",
	}
	result, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "process error")
	assert.Equal(t, "\n      return x;", result.Text, "current indent plus one unit")
	assert.Equal(t, req.Cursor, result.Anchor, "anchor stays at cursor")
}

func TestProcess_DeduplicatesInline(t *testing.T) {
	p := newTestProcessor(t)

	req := &Request{
		Document:   types.NewDocument("calc"),
		Cursor:     types.Position{Line: 0, Col: 4},
		LanguageID: "python",
		Indent:     spaceIndent(),
		Candidate:  "calculate_sum(a, b):",
	}
	result, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "process error")
	assert.Equal(t, "ulate_sum(a, b):", result.Text, "partial identifier stripped")
	assert.Equal(t, req.Cursor, result.Anchor, "anchor stays at cursor")
}

func TestProcess_FullyDuplicatedCandidateYieldsEmpty(t *testing.T) {
	p := newTestProcessor(t)

	req := &Request{
		Document:   types.NewDocument("return"),
		Cursor:     types.Position{Line: 0, Col: 6},
		LanguageID: "javascript",
		Indent:     spaceIndent(),
		Candidate:  "return",
	}
	result, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "process error")
	assert.Equal(t, "", result.Text, "nothing left after deduplication")
	assert.Equal(t, req.Cursor, result.Anchor, "anchor stays at cursor")
	assert.Equal(t, 0, p.Stats().Shown, "empty results are not tracked")
}

func TestProcess_CancelledContextHasNoSideEffects(t *testing.T) {
	p := newTestProcessor(t)
	p.HandleEditorChanged("a.py", []string{"import os"})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	req := &Request{
		Document:   types.NewDocument("import os"),
		Cursor:     types.Position{Line: 0, Col: 9},
		LanguageID: "python",
		Indent:     spaceIndent(),
		Candidate:  "import sys",
	}
	result, err := p.Process(cancelled, req)
	assert.Error(t, err, "cancellation surfaces as error")
	assert.Nil(t, result, "no result on cancellation")

	stats := p.Stats()
	assert.Equal(t, 0, stats.Shown, "no suggestion tracked")
	bundle := p.BuildContext(0)
	assert.Len(t, bundle.AcceptedSuggestions, 0, "accepted log untouched")
}

func TestProcess_NilDocumentRejected(t *testing.T) {
	p := newTestProcessor(t)

	_, err := p.Process(context.Background(), &Request{Candidate: "x"})
	assert.Error(t, err, "nil document rejected")
}

func TestSuggestionLifecycle_AcceptAndDispose(t *testing.T) {
	p := newTestProcessor(t)
	p.HandleEditorChanged("a.py", []string{"import os"})

	req := &Request{
		Document:   types.NewDocument("import os"),
		Cursor:     types.Position{Line: 0, Col: 9},
		LanguageID: "python",
		Indent:     spaceIndent(),
		Candidate:  "import sys",
	}
	first, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "first process")
	assert.NotEqual(t, "", first.SuggestionID, "shown suggestion gets an id")

	// A second suggestion replaces the first, disposing it.
	second, err := p.Process(context.Background(), req)
	assert.NoError(t, err, "second process")
	assert.NotEqual(t, first.SuggestionID, second.SuggestionID, "ids are distinct")

	p.HandleSuggestionAccepted(second.Text)

	stats := p.Stats()
	assert.Equal(t, 2, stats.Shown, "two suggestions shown")
	assert.Equal(t, 1, stats.Disposed, "first suggestion disposed")
	assert.Equal(t, 1, stats.Accepted, "second suggestion accepted")

	bundle := p.BuildContext(0)
	assert.Len(t, bundle.AcceptedSuggestions, 1, "acceptance recorded in context")
	assert.Equal(t, second.Text, bundle.AcceptedSuggestions[0], "accepted text logged verbatim")
}

func TestBuildContext_ActiveFile(t *testing.T) {
	p := newTestProcessor(t)

	lines := []string{"a", "b", "c", "d", "e"}
	p.HandleEditorChanged("a.go", lines)

	bundle := p.BuildContext(2)
	assert.Len(t, bundle.RecentLines, 5, "window holds the whole small file")
	assert.Len(t, bundle.SurroundingContext, 5, "snapshot clipped to file bounds")
	assert.Equal(t, "c", bundle.SurroundingContext[2], "snapshot centered at cursor")
}

func TestBuildContext_NoActiveFileIsEmpty(t *testing.T) {
	p := newTestProcessor(t)

	bundle := p.BuildContext(0)
	assert.True(t, bundle.Empty(), "no context before any file event")
}

func TestHandleDocumentChanged_BackgroundFileKeepsFocus(t *testing.T) {
	p := newTestProcessor(t)

	p.HandleEditorChanged("a.go", []string{"front"})
	p.HandleDocumentChanged("b.go", []string{"back"})

	bundle := p.BuildContext(0)
	assert.Len(t, bundle.RecentLines, 1, "active window unchanged")
	assert.Equal(t, "front", bundle.RecentLines[0], "active file still a.go")
}

func TestHandleDocumentChanged_RecordsEditHistory(t *testing.T) {
	p := newTestProcessor(t)

	p.HandleEditorChanged("a.go", []string{"x := 1", "y := 2"})
	p.HandleDocumentChanged("a.go", []string{"x := 1", "y := 3"})

	bundle := p.BuildContext(0)
	assert.Len(t, bundle.RecentEdits, 1, "one edit recorded")
	assert.Equal(t, "y := 2", bundle.RecentEdits[0].Original, "original content")
	assert.Equal(t, "y := 3", bundle.RecentEdits[0].Updated, "updated content")
}

func TestFileStore_EvictsLeastRecentlyTouched(t *testing.T) {
	p := newTestProcessor(t)

	p.HandleEditorChanged("a.go", []string{"a"})
	p.HandleDocumentChanged("b.go", []string{"b"})
	p.HandleDocumentChanged("c.go", []string{"c"})
	p.HandleDocumentChanged("d.go", []string{"d"})
	p.HandleDocumentChanged("e.go", []string{"e"})

	assert.Len(t, p.files, maxTrackedFiles, "store capped")
	assert.NotNil(t, p.files["a.go"], "active file never evicted")
	assert.Nil(t, p.files["b.go"], "oldest background file evicted")
	assert.NotNil(t, p.files["e.go"], "just-synced file retained")

	bundle := p.files["e.go"].manager.Bundle(p.files["e.go"].lines, 0)
	assert.Len(t, bundle.RecentLines, 1, "retained state holds the synced window")
	assert.Equal(t, "e", bundle.RecentLines[0], "window content for the new file")
}
