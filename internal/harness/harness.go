package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/rowfilter/internal/filter"
	"github.com/roach88/rowfilter/internal/source"
	"github.com/roach88/rowfilter/internal/store"
	"github.com/roach88/rowfilter/internal/translate"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Parse the predicate source
//  2. Translate it and inspect the filter tree
//  3. If a fixture is present, run the statement against a fresh in-memory
//     database
//  4. Compare every observable with the expectations
//
// Translation and syntax failures are results, not errors. The returned
// error is reserved for fixture problems (bad setup SQL, query failures).
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context for fixture queries.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	stmt := translateScenario(scenario, result)
	if stmt != nil && scenario.Fixture != nil {
		rows, err := runFixture(ctx, scenario.Fixture, stmt)
		if err != nil {
			return nil, err
		}
		result.Rows = rows
	}

	for _, msg := range EvaluateExpectations(result, scenario.Expect) {
		result.AddError(msg)
	}
	return result, nil
}

// translateScenario fills the translation fields of result. It returns nil
// when parsing or translation failed.
func translateScenario(scenario *Scenario, result *Result) *translate.Statement {
	lambda, err := source.Parse(scenario.Predicate)
	if err != nil {
		result.ErrorKind = ErrorKindSyntax
		result.ErrorMessage = err.Error()
		return nil
	}

	stmt, err := translate.Translate(lambda)
	if err != nil {
		var te *translate.Error
		if errors.As(err, &te) {
			result.ErrorKind = string(te.Kind)
			result.ErrorMessage = te.Message
		} else {
			result.ErrorKind = "UNKNOWN"
			result.ErrorMessage = err.Error()
		}
		return nil
	}

	result.QueryText = stmt.QueryText()
	result.Parameters = stmt.Parameters()
	for _, w := range filter.Inspect(stmt.Filter()).Warnings {
		result.Warnings = append(result.Warnings, string(w.Code))
	}
	return stmt
}

func runFixture(ctx context.Context, fx *Fixture, stmt *translate.Statement) ([]store.Row, error) {
	// Create fresh in-memory SQLite database
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	for i, q := range fx.Setup {
		if _, err := st.Exec(ctx, q); err != nil {
			return nil, fmt.Errorf("fixture.setup[%d]: %w", i, err)
		}
	}

	rows, err := st.Select(ctx, fx.Table, stmt)
	if err != nil {
		return nil, fmt.Errorf("fixture query: %w", err)
	}
	return rows, nil
}
