package dedup

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// DeclarationPattern is a language-tagged construct-signature pattern. The
// pattern must capture the declared identifier in group 1.
type DeclarationPattern struct {
	Language string `yaml:"language"`
	Pattern  string `yaml:"pattern"`
}

// Tables holds the data-only configuration for the resolver.
type Tables struct {
	Declarations []DeclarationPattern `yaml:"declarations"`
	Keywords     []string             `yaml:"keywords"`
}

// DefaultTables parses the embedded resolver tables.
func DefaultTables() (*Tables, error) {
	var tables Tables
	if err := yaml.Unmarshal(defaultTablesYAML, &tables); err != nil {
		return nil, fmt.Errorf("parse resolver tables: %w", err)
	}
	if len(tables.Declarations) == 0 || len(tables.Keywords) == 0 {
		return nil, fmt.Errorf("resolver tables are incomplete")
	}
	return &tables, nil
}

type declarationMatcher struct {
	language string
	re       *regexp.Regexp
}

func compileDeclarations(patterns []DeclarationPattern) ([]declarationMatcher, error) {
	matchers := make([]declarationMatcher, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.Pattern, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("pattern %q captures no identifier", p.Pattern)
		}
		matchers = append(matchers, declarationMatcher{language: p.Language, re: re})
	}
	return matchers, nil
}
