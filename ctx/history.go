package ctx

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"tabmend/types"
)

// granularDiffEntries compares two document revisions line-wise and returns
// one DiffEntry per contiguous changed region. Unchanged context is never
// stored; replacing a large window that only touches a few lines yields only
// those lines.
func granularDiffEntries(oldLines, newLines []string) []*types.DiffEntry {
	oldText := strings.Join(oldLines, "\n")
	newText := strings.Join(newLines, "\n")

	if oldText == newText {
		return nil
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	lineDiffs := dmp.DiffCharsToLines(diffs, lineArray)

	var entries []*types.DiffEntry

	for i := 0; i < len(lineDiffs); i++ {
		diff := lineDiffs[i]

		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			continue

		case diffmatchpatch.DiffDelete:
			deletedText := strings.TrimSuffix(diff.Text, "\n")
			insertedText := ""

			// A delete followed by an insert is a modification; fold the
			// pair into one entry.
			if i+1 < len(lineDiffs) && lineDiffs[i+1].Type == diffmatchpatch.DiffInsert {
				insertedText = strings.TrimSuffix(lineDiffs[i+1].Text, "\n")
				i++
			}

			entries = append(entries, &types.DiffEntry{
				Original: deletedText,
				Updated:  insertedText,
			})

		case diffmatchpatch.DiffInsert:
			entries = append(entries, &types.DiffEntry{
				Original: "",
				Updated:  strings.TrimSuffix(diff.Text, "\n"),
			})
		}
	}

	return entries
}
