package rules

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTableYAML []byte

// Rule maps a line-prefix pattern to a formatting action. Rules are immutable
// configuration data; their position in the containing list is significant.
type Rule struct {
	Pattern        string `yaml:"pattern"`
	ShouldBreak    bool   `yaml:"break"`
	IndentNextLine bool   `yaml:"indent"`
}

// Table is the full ordered rule configuration: a general list plus
// per-language override lists. Override lists are always consulted before
// the general list.
type Table struct {
	General   []Rule            `yaml:"general"`
	Overrides map[string][]Rule `yaml:"overrides"`
}

// DefaultTable parses the embedded rule table.
func DefaultTable() (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(defaultTableYAML, &table); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}
	if len(table.General) == 0 {
		return nil, fmt.Errorf("rule table has no general rules")
	}
	return &table, nil
}
