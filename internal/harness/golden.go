package harness

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rowfilter/internal/expr"
	"github.com/roach88/rowfilter/internal/store"
)

// GoldenDir is the fixture directory for golden snapshots, relative to the
// test's package.
const GoldenDir = "testdata/golden"

// Snapshot renders a result as deterministic text for golden comparison:
//
//	scenario: not_equal_id
//	predicate: row => row.Id != 1
//	query_text: Id <> @Id
//	parameters:
//	  @Id = 1 (int64)
//
// Warnings and rows sections appear only when present. Failed translations
// render the error kind and message instead of the query.
func Snapshot(scenario *Scenario, result *Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "scenario: %s\n", scenario.Name)
	fmt.Fprintf(&b, "predicate: %s\n", scenario.Predicate)

	if result.ErrorKind != "" {
		fmt.Fprintf(&b, "error: %s\n", result.ErrorKind)
		fmt.Fprintf(&b, "message: %s\n", result.ErrorMessage)
		return b.Bytes()
	}

	fmt.Fprintf(&b, "query_text: %s\n", result.QueryText)
	if len(result.Parameters) == 0 {
		b.WriteString("parameters: none\n")
	} else {
		b.WriteString("parameters:\n")
		for _, p := range result.Parameters {
			typ := "untyped"
			if p.Type != nil {
				typ = p.Type.String()
			}
			fmt.Fprintf(&b, "  %s = %s (%s)\n", p.Name, expr.FormatValue(p.Value), typ)
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("warnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	if result.Rows != nil {
		fmt.Fprintf(&b, "rows: %d\n", len(result.Rows))
		for _, row := range result.Rows {
			fmt.Fprintf(&b, "  %s\n", FormatRow(row))
		}
	}

	return b.Bytes()
}

// FormatRow renders a row as {col: value, ...} with columns sorted.
func FormatRow(row store.Row) string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + ": " + expr.FormatValue(row[col])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie) occurs
// if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario, result)
	return result, nil
}

// AssertGolden compares an existing result's snapshot against its golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Snapshot(scenario, result))
}
