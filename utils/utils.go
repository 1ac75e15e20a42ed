package utils

// AvgCharsPerToken is a conservative estimate for mixed content (code + JSON)
const AvgCharsPerToken = 2

// EstimateCharsFromTokens estimates the number of characters for a given token count
func EstimateCharsFromTokens(tokens int) int {
	return tokens * AvgCharsPerToken
}

// DiffEntry interface for token limiting - matches types.DiffEntry
type DiffEntry interface {
	GetOriginal() string
	GetUpdated() string
}

// TrimDiffEntries trims diff entries to fit within maxTokens.
// Keeps the most recent entries and removes older ones if over limit.
func TrimDiffEntries[T DiffEntry](diffs []T, maxTokens int) []T {
	if len(diffs) == 0 || maxTokens <= 0 {
		return diffs
	}

	maxChars := EstimateCharsFromTokens(maxTokens)

	totalChars := 0
	cutoffIndex := 0

	// Newest entries live at the end; walk backwards and cut off the oldest
	// ones once the budget is spent.
	for i := len(diffs) - 1; i >= 0; i-- {
		entryChars := len(diffs[i].GetOriginal()) + len(diffs[i].GetUpdated())
		if totalChars+entryChars > maxChars && i < len(diffs)-1 {
			cutoffIndex = i + 1
			break
		}
		totalChars += entryChars
	}

	if cutoffIndex > 0 {
		return diffs[cutoffIndex:]
	}
	return diffs
}

// TrimLinesToApproxTokens keeps the most recent (trailing) lines that fit
// within maxTokens. maxTokens <= 0 means no limit.
func TrimLinesToApproxTokens(lines []string, maxTokens int) []string {
	if len(lines) == 0 || maxTokens <= 0 {
		return lines
	}

	maxChars := EstimateCharsFromTokens(maxTokens)

	totalChars := 0
	start := len(lines)
	for start > 0 {
		lineChars := len(lines[start-1]) + 1 // +1 for newline
		if totalChars+lineChars > maxChars && start < len(lines) {
			break
		}
		totalChars += lineChars
		start--
	}

	return lines[start:]
}

// CopyLines creates a deep copy of a string slice
func CopyLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	result := make([]string, len(lines))
	copy(result, lines)
	return result
}
