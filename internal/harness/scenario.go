package harness

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// validIdentifier matches valid SQL identifiers (table names).
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Scenario defines a predicate conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Predicate is the source text, e.g. "row => row.Id != 1".
	Predicate string `yaml:"predicate"`

	// Fixture optionally provides a table to run the predicate against.
	Fixture *Fixture `yaml:"fixture,omitempty"`

	// Expect holds the expected translation outcome.
	Expect Expect `yaml:"expect"`
}

// Fixture is a SQLite table created fresh for each run.
type Fixture struct {
	// Table is queried with the translated predicate.
	Table string `yaml:"table"`

	// Setup statements run in order before the query.
	Setup []string `yaml:"setup"`
}

// Expect specifies the expected outcome.
type Expect struct {
	// QueryText is the exact rendered filter.
	QueryText string `yaml:"query_text,omitempty"`

	// Parameters lists bind parameters in order. Omitted means none.
	Parameters []ExpectedParameter `yaml:"parameters,omitempty"`

	// Warnings lists inspection warning codes in order. Omitted means none.
	Warnings []string `yaml:"warnings,omitempty"`

	// Rows lists the matching fixture rows in rowid order.
	// Each entry is a subset match on the listed columns.
	Rows []map[string]any `yaml:"rows,omitempty"`

	// Error is the expected error kind. Mutually exclusive with the rest.
	Error string `yaml:"error,omitempty"`
}

// ExpectedParameter is one expected bind parameter.
type ExpectedParameter struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "query:" vs "query_text:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Predicate == "" {
		return fmt.Errorf("predicate is required")
	}

	e := s.Expect
	if e.Error != "" {
		if e.QueryText != "" || len(e.Parameters) > 0 || len(e.Warnings) > 0 || len(e.Rows) > 0 {
			return fmt.Errorf("expect.error cannot be combined with other expectations")
		}
	} else if e.QueryText == "" {
		return fmt.Errorf("expect.query_text is required unless expect.error is set")
	}

	for i, p := range e.Parameters {
		if p.Name == "" {
			return fmt.Errorf("expect.parameters[%d]: name is required", i)
		}
	}

	if len(e.Rows) > 0 && s.Fixture == nil {
		return fmt.Errorf("expect.rows requires a fixture")
	}

	if s.Fixture != nil {
		if !validIdentifier.MatchString(s.Fixture.Table) {
			return fmt.Errorf("fixture.table %q is not a valid identifier", s.Fixture.Table)
		}
		if len(s.Fixture.Setup) == 0 {
			return fmt.Errorf("fixture.setup is required and must be non-empty")
		}
	}

	return nil
}
