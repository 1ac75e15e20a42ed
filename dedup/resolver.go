// Package dedup strips the part of a model completion that restates what the
// user already typed on the current line. Three layered heuristics are tried
// in a fixed order; the first one that strips wins and is never re-applied to
// its own output.
package dedup

import "strings"

// Resolver removes prefix/completion overlap using the configured tables.
// It is immutable after construction and safe for concurrent reads.
type Resolver struct {
	declarations []declarationMatcher
	keywords     []string
}

// NewResolver compiles the given tables.
func NewResolver(tables *Tables) (*Resolver, error) {
	declarations, err := compileDeclarations(tables.Declarations)
	if err != nil {
		return nil, err
	}
	keywords := make([]string, len(tables.Keywords))
	copy(keywords, tables.Keywords)
	return &Resolver{declarations: declarations, keywords: keywords}, nil
}

// NewDefaultResolver compiles the embedded tables.
func NewDefaultResolver() (*Resolver, error) {
	tables, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return NewResolver(tables)
}

// Resolve returns completion with any echo of linePrefix removed. Strategies
// run strictly in order: construct-signature match, partial-identifier match,
// keyword-boundary match. When none applies the input is returned unchanged.
// Pure function of its inputs and the compiled tables.
func (r *Resolver) Resolve(linePrefix, completion, languageID string) string {
	if completion == "" {
		return completion
	}
	prefix := strings.TrimSpace(linePrefix)
	if prefix == "" {
		return completion
	}

	if out, ok := r.stripConstructEcho(prefix, completion, languageID); ok {
		return out
	}
	if out, ok := stripPartialIdentifier(prefix, completion); ok {
		return out
	}
	if out, ok := r.stripKeywordEcho(prefix, completion); ok {
		return out
	}
	return completion
}

// stripConstructEcho handles the model restating a declaration header the
// user already typed: when the prefix matches a declaration pattern and the
// completion, matched against the same pattern, declares the identical
// identifier, the completion's own header match is stripped. The language's
// patterns are consulted first, then every other known language.
func (r *Resolver) stripConstructEcho(prefix, completion, languageID string) (string, bool) {
	if languageID != "" {
		for _, m := range r.declarations {
			if m.language != languageID {
				continue
			}
			if out, ok := stripDeclarationEcho(m, prefix, completion); ok {
				return out, true
			}
		}
	}
	for _, m := range r.declarations {
		if m.language == languageID {
			continue
		}
		if out, ok := stripDeclarationEcho(m, prefix, completion); ok {
			return out, true
		}
	}
	return "", false
}

func stripDeclarationEcho(m declarationMatcher, prefix, completion string) (string, bool) {
	prefixMatch := m.re.FindStringSubmatch(prefix)
	if prefixMatch == nil || prefixMatch[1] == "" {
		return "", false
	}

	trimmed := strings.TrimLeft(completion, " \t")
	loc := m.re.FindStringSubmatchIndex(trimmed)
	if loc == nil || loc[0] != 0 {
		return "", false
	}

	if trimmed[loc[2]:loc[3]] != prefixMatch[1] {
		return "", false
	}
	return strings.TrimLeft(trimmed[loc[1]:], " \t"), true
}

// stripPartialIdentifier handles the prefix ending in a partially typed
// identifier that the completion spells out in full: the leading occurrence
// of the partial run is stripped when the completion continues it with an
// identifier character or an opening bracket.
func stripPartialIdentifier(prefix, completion string) (string, bool) {
	tail := trailingIdentifier(prefix)
	if tail == "" {
		return "", false
	}
	if !strings.HasPrefix(completion, tail) || len(completion) <= len(tail) {
		return "", false
	}
	next := completion[len(tail)]
	if !isIdentChar(next) && !isOpenBracket(next) {
		return "", false
	}
	return completion[len(tail):], true
}

// stripKeywordEcho handles the completion repeating the reserved word the
// prefix ends with. Both occurrences must sit at a word boundary.
func (r *Resolver) stripKeywordEcho(prefix, completion string) (string, bool) {
	for _, keyword := range r.keywords {
		if !endsWithKeyword(prefix, keyword) {
			continue
		}
		if !startsWithKeyword(completion, keyword) {
			continue
		}
		return strings.TrimLeft(completion[len(keyword):], " \t"), true
	}
	return "", false
}

func endsWithKeyword(s, keyword string) bool {
	if !strings.HasSuffix(s, keyword) {
		return false
	}
	boundary := len(s) - len(keyword)
	return boundary == 0 || !isIdentChar(s[boundary-1])
}

func startsWithKeyword(s, keyword string) bool {
	if !strings.HasPrefix(s, keyword) {
		return false
	}
	return len(s) == len(keyword) || !isIdentChar(s[len(keyword)])
}

// trailingIdentifier returns the maximal run of word characters at the end
// of s, or "" when s ends in a non-word character.
func trailingIdentifier(s string) string {
	i := len(s)
	for i > 0 && isIdentChar(s[i-1]) {
		i--
	}
	return s[i:]
}

func isIdentChar(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func isOpenBracket(ch byte) bool {
	return ch == '(' || ch == '[' || ch == '{'
}
