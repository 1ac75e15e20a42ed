package utils

import (
	"testing"

	"tabmend/assert"
)

type mockDiffEntry struct {
	original string
	updated  string
}

func (m *mockDiffEntry) GetOriginal() string { return m.original }
func (m *mockDiffEntry) GetUpdated() string  { return m.updated }

func TestTrimDiffEntries_EmptySlice(t *testing.T) {
	var diffs []*mockDiffEntry
	result := TrimDiffEntries(diffs, 100)

	assert.Equal(t, 0, len(result), "result length")
}

func TestTrimDiffEntries_ZeroMaxTokens(t *testing.T) {
	diffs := []*mockDiffEntry{{original: "old", updated: "new"}}
	result := TrimDiffEntries(diffs, 0)

	// maxTokens <= 0 means no limit
	assert.Equal(t, 1, len(result), "result length")
}

func TestTrimDiffEntries_KeepsMostRecent(t *testing.T) {
	diffs := []*mockDiffEntry{
		{original: "oldest entry content", updated: "oldest replacement"},
		{original: "middle entry content", updated: "middle replacement"},
		{original: "newest entry content", updated: "newest replacement"},
	}

	result := TrimDiffEntries(diffs, 5)

	assert.Less(t, len(result), 3, "older entries dropped")
	assert.Greater(t, len(result), 0, "at least the newest entry kept")
	assert.Equal(t, "newest entry content", result[len(result)-1].original, "newest entry retained")
}

func TestTrimLinesToApproxTokens_NoLimit(t *testing.T) {
	lines := []string{"a", "b", "c"}

	assert.Equal(t, 3, len(TrimLinesToApproxTokens(lines, 0)), "zero max keeps everything")
	assert.Equal(t, 3, len(TrimLinesToApproxTokens(lines, 1000)), "large budget keeps everything")
}

func TestTrimLinesToApproxTokens_KeepsTail(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "this line takes up budget"
	}

	result := TrimLinesToApproxTokens(lines, 20)

	assert.Less(t, len(result), 50, "lines trimmed")
	assert.Greater(t, len(result), 0, "at least one line kept")
	assert.Equal(t, lines[len(lines)-1], result[len(result)-1], "tail preserved")
}

func TestCopyLines(t *testing.T) {
	assert.Nil(t, CopyLines(nil), "nil in, nil out")

	original := []string{"a", "b"}
	copied := CopyLines(original)
	copied[0] = "changed"

	assert.Equal(t, "a", original[0], "copy does not alias the source")
}
