package translate

import (
	"errors"
	"fmt"

	"github.com/roach88/rowfilter/internal/expr"
)

// ErrorKind categorizes translation failures.
type ErrorKind string

const (
	// ErrInvalidRoot indicates the root is not a lambda.
	ErrInvalidRoot ErrorKind = "INVALID_ROOT"

	// ErrArity indicates the wrong number of lambda parameters or call
	// arguments.
	ErrArity ErrorKind = "ARITY_ERROR"

	// ErrUnsupportedNode indicates an expression kind the translator does
	// not handle in that position.
	ErrUnsupportedNode ErrorKind = "UNSUPPORTED_NODE"

	// ErrUnboundReference indicates a member access on something other than
	// the bound parameter.
	ErrUnboundReference ErrorKind = "UNBOUND_REFERENCE"

	// ErrUnsupportedCall indicates a method other than Contains, StartsWith
	// or EndsWith.
	ErrUnsupportedCall ErrorKind = "UNSUPPORTED_CALL"
)

// Error is returned by Translate. Node holds the formatted text of the
// offending expression.
type Error struct {
	Kind    ErrorKind
	Message string
	Node    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, n expr.Node, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Node:    expr.Format(n),
	}
}

// IsKind reports whether err is a translation error of the given kind.
// Uses errors.As to handle wrapped errors.
func IsKind(err error, kind ErrorKind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

func kindOf(n expr.Node) string {
	if expr.IsNilNode(n) {
		return "<nil>"
	}
	return string(n.Kind())
}
