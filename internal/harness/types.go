package harness

import (
	"github.com/roach88/rowfilter/internal/store"
	"github.com/roach88/rowfilter/internal/translate"
)

// ErrorKindSyntax is the error kind reported when a predicate fails to parse.
const ErrorKindSyntax = "SYNTAX_ERROR"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expectations match.
	Pass bool `json:"pass"`

	// QueryText is the rendered filter. Empty when translation failed.
	QueryText string `json:"query_text,omitempty"`

	// Parameters are the bind parameters in walk order.
	Parameters []translate.BindParameter `json:"-"`

	// Warnings are the inspection warning codes, in walk order.
	Warnings []string `json:"warnings,omitempty"`

	// Rows are the fixture rows matching the predicate. Nil without a fixture.
	Rows []store.Row `json:"rows,omitempty"`

	// ErrorKind is the translation error kind, or SYNTAX_ERROR.
	ErrorKind string `json:"error_kind,omitempty"`

	// ErrorMessage is the failure's message without the kind prefix.
	ErrorMessage string `json:"error_message,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
