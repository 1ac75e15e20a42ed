// Package rules classifies line prefixes and picks a formatting action for
// an incoming completion: inline, or on a new line with adjusted indentation.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"tabmend/types"
)

// DefaultLongLineThreshold is the prefix length beyond which a completion is
// placed on a new line even when no rule pattern matches.
const DefaultLongLineThreshold = 120

type compiledRule struct {
	re          *regexp.Regexp
	shouldBreak bool
	indentNext  bool
}

// Engine evaluates the ordered rule table against line prefixes. It is
// immutable after construction and safe for concurrent reads.
type Engine struct {
	general   []compiledRule
	overrides map[string][]compiledRule
	longLine  int
}

// NewEngine compiles the given table. A longLineThreshold of 0 disables the
// long-line fallback; a negative value selects the default.
func NewEngine(table *Table, longLineThreshold int) (*Engine, error) {
	if longLineThreshold < 0 {
		longLineThreshold = DefaultLongLineThreshold
	}

	general, err := compileRules(table.General)
	if err != nil {
		return nil, fmt.Errorf("general rules: %w", err)
	}

	overrides := make(map[string][]compiledRule, len(table.Overrides))
	for lang, ruleList := range table.Overrides {
		compiled, err := compileRules(ruleList)
		if err != nil {
			return nil, fmt.Errorf("%s rules: %w", lang, err)
		}
		overrides[lang] = compiled
	}

	return &Engine{
		general:   general,
		overrides: overrides,
		longLine:  longLineThreshold,
	}, nil
}

// NewDefaultEngine compiles the embedded rule table.
func NewDefaultEngine(longLineThreshold int) (*Engine, error) {
	table, err := DefaultTable()
	if err != nil {
		return nil, err
	}
	return NewEngine(table, longLineThreshold)
}

func compileRules(ruleList []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(ruleList))
	for _, rule := range ruleList {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{
			re:          re,
			shouldBreak: rule.ShouldBreak,
			indentNext:  rule.IndentNextLine,
		})
	}
	return compiled, nil
}

// Decide returns the formatting decision for the given line prefix. The
// language override list for languageID is scanned first, then the general
// list; the earliest matching rule wins and no later rule is consulted.
// An empty or whitespace-only prefix, or no match at all, yields the inline
// decision. Pure function of its inputs and the compiled table.
func (e *Engine) Decide(linePrefix, languageID string, indent types.IndentSettings) types.Decision {
	trimmed := strings.TrimSpace(linePrefix)
	if trimmed == "" {
		return types.Decision{}
	}

	if rule, ok := e.firstMatch(linePrefix, languageID); ok {
		if !rule.shouldBreak {
			return types.Decision{}
		}
		indentation := LeadingWhitespace(linePrefix)
		if rule.indentNext {
			indentation += indent.Unit()
		}
		return types.Decision{InsertOnNewLine: true, Indentation: indentation}
	}

	// Degenerate single-line output guard: very long prefixes break even
	// without a pattern match.
	if e.longLine > 0 && len(trimmed) > e.longLine {
		return types.Decision{InsertOnNewLine: true, Indentation: LeadingWhitespace(linePrefix)}
	}

	return types.Decision{}
}

func (e *Engine) firstMatch(linePrefix, languageID string) (compiledRule, bool) {
	if languageID != "" {
		for _, rule := range e.overrides[languageID] {
			if rule.re.MatchString(linePrefix) {
				return rule, true
			}
		}
	}
	for _, rule := range e.general {
		if rule.re.MatchString(linePrefix) {
			return rule, true
		}
	}
	return compiledRule{}, false
}

// LeadingWhitespace returns the run of spaces and tabs at the start of line.
func LeadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}
