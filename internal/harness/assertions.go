package harness

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/rowfilter/internal/expr"
	"github.com/roach88/rowfilter/internal/store"
	"github.com/roach88/rowfilter/internal/translate"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Field    string // Which expectation failed
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("expect.%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// EvaluateExpectations compares a result with the scenario's expectations.
// Returns a slice of error messages for failed expectations.
func EvaluateExpectations(result *Result, expect Expect) []string {
	var errors []string
	add := func(err error) {
		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	if expect.Error != "" || result.ErrorKind != "" {
		add(assertError(result, expect))
		return errors
	}

	add(assertQueryText(result, expect))
	add(assertParameters(result.Parameters, expect.Parameters))
	add(assertWarnings(result.Warnings, expect.Warnings))
	if result.Rows != nil || expect.Rows != nil {
		add(assertRows(result.Rows, expect.Rows))
	}
	return errors
}

func assertError(result *Result, expect Expect) error {
	if result.ErrorKind == expect.Error {
		return nil
	}
	actual := "success"
	if result.ErrorKind != "" {
		actual = fmt.Sprintf("%s (%s)", result.ErrorKind, result.ErrorMessage)
	}
	expected := "success"
	if expect.Error != "" {
		expected = expect.Error
	}
	return &AssertionError{Field: "error", Expected: expected, Actual: actual}
}

func assertQueryText(result *Result, expect Expect) error {
	if result.QueryText == expect.QueryText {
		return nil
	}
	return &AssertionError{Field: "query_text", Expected: fmt.Sprintf("%q", expect.QueryText), Actual: fmt.Sprintf("%q", result.QueryText)}
}

func assertParameters(actual []translate.BindParameter, expected []ExpectedParameter) error {
	if len(actual) != len(expected) {
		return &AssertionError{
			Field:    "parameters",
			Expected: fmt.Sprintf("%d parameters", len(expected)),
			Actual:   fmt.Sprintf("%d (%s)", len(actual), formatParameters(actual)),
		}
	}
	for i, exp := range expected {
		act := actual[i]
		if act.Name != exp.Name || !valuesEqual(exp.Value, act.Value) {
			return &AssertionError{
				Field:    fmt.Sprintf("parameters[%d]", i),
				Expected: fmt.Sprintf("%s=%v", exp.Name, exp.Value),
				Actual:   fmt.Sprintf("%s=%s", act.Name, expr.FormatValue(act.Value)),
			}
		}
	}
	return nil
}

func assertWarnings(actual, expected []string) error {
	if len(actual) == 0 && len(expected) == 0 {
		return nil
	}
	if slices.Equal(actual, expected) {
		return nil
	}
	return &AssertionError{Field: "warnings", Expected: fmt.Sprintf("%v", expected), Actual: fmt.Sprintf("%v", actual)}
}

func assertRows(actual []store.Row, expected []map[string]any) error {
	if len(actual) != len(expected) {
		return &AssertionError{
			Field:    "rows",
			Expected: fmt.Sprintf("%d rows", len(expected)),
			Actual:   fmt.Sprintf("%d rows", len(actual)),
		}
	}
	for i, exp := range expected {
		for col, want := range exp {
			got, ok := actual[i][col]
			if !ok {
				return &AssertionError{Field: fmt.Sprintf("rows[%d].%s", i, col), Expected: fmt.Sprintf("%v", want), Actual: "no such column"}
			}
			if !valuesEqual(want, got) {
				return &AssertionError{Field: fmt.Sprintf("rows[%d].%s", i, col), Expected: fmt.Sprintf("%v", want), Actual: expr.FormatValue(got)}
			}
		}
	}
	return nil
}

func formatParameters(params []translate.BindParameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + "=" + expr.FormatValue(p.Value)
	}
	return strings.Join(parts, ", ")
}

// valuesEqual compares a YAML-decoded expected value with an actual value.
// YAML integers decode as int and floats as float64, while translated
// constants are int64 or decimal.Decimal and SQLite returns int64/float64.
func valuesEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return (expected == nil && expr.IsNullValue(actual)) || (actual == nil && expr.IsNullValue(expected))
	}

	switch exp := expected.(type) {
	case string:
		act, ok := actual.(string)
		return ok && exp == act
	case int:
		return valuesEqual(int64(exp), actual)
	case int64:
		switch act := actual.(type) {
		case int64:
			return exp == act
		case int:
			return exp == int64(act)
		case int32:
			return exp == int64(act)
		case decimal.Decimal:
			return act.Equal(decimal.NewFromInt(exp))
		}
		return false
	case float64:
		switch act := actual.(type) {
		case float64:
			return exp == act
		case decimal.Decimal:
			return act.Equal(decimal.NewFromFloat(exp))
		case int64:
			return exp == float64(act)
		}
		return false
	case bool:
		switch act := actual.(type) {
		case bool:
			return exp == act
		case int64:
			// SQLite stores booleans as integers
			return exp == (act != 0)
		}
		return false
	}

	// Fallback to DeepEqual for complex types
	return reflect.DeepEqual(expected, actual)
}
