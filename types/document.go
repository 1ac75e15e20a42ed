package types

import "strings"

// Document is an immutable line-oriented snapshot of an open file.
// All accessors clip to document bounds and never fail.
type Document struct {
	lines []string
}

// NewDocument splits text on newlines into a Document.
func NewDocument(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// NewDocumentFromLines copies lines into a Document.
func NewDocumentFromLines(lines []string) *Document {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Document{lines: copied}
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.lines)
}

// Line returns the line at index i, or "" when i is out of range.
func (d *Document) Line(i int) string {
	if d == nil || i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns a copy of all document lines.
func (d *Document) Lines() []string {
	if d == nil {
		return nil
	}
	copied := make([]string, len(d.lines))
	copy(copied, d.lines)
	return copied
}

// GetText returns the text within the given range, clipped to document
// bounds. Lines and columns are 0-indexed; the end position is exclusive.
func (d *Document) GetText(startLine, startCol, endLine, endCol int) string {
	if d == nil || len(d.lines) == 0 {
		return ""
	}

	if startLine < 0 {
		startLine = 0
		startCol = 0
	}
	if endLine >= len(d.lines) {
		endLine = len(d.lines) - 1
		endCol = len(d.lines[endLine])
	}
	if startLine > endLine || endLine < 0 {
		return ""
	}

	clampCol := func(line string, col int) int {
		if col < 0 {
			return 0
		}
		if col > len(line) {
			return len(line)
		}
		return col
	}

	if startLine == endLine {
		line := d.lines[startLine]
		s := clampCol(line, startCol)
		e := clampCol(line, endCol)
		if s > e {
			return ""
		}
		return line[s:e]
	}

	var b strings.Builder
	first := d.lines[startLine]
	b.WriteString(first[clampCol(first, startCol):])
	b.WriteString("\n")
	for i := startLine + 1; i < endLine; i++ {
		b.WriteString(d.lines[i])
		b.WriteString("\n")
	}
	last := d.lines[endLine]
	b.WriteString(last[:clampCol(last, endCol)])
	return b.String()
}

// LinePrefix returns the substring of the line at pos.Line from column 0 up
// to pos.Col, clipped to the line's length.
func (d *Document) LinePrefix(pos Position) string {
	line := d.Line(pos.Line)
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	return line[:col]
}
