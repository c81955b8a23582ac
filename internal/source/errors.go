package source

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// SyntaxError describes a predicate that could not be parsed.
// Line and Column are 1-based and relative to the full source text; zero
// means the position is unknown.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// position maps a position inside the body back to the full source. The body
// starts at column offset+1 of line 1.
func position(pos token.Pos, offset int) (line, column int) {
	if !pos.IsValid() {
		return 0, 0
	}
	line, column = pos.Line(), pos.Column()
	if line == 1 {
		column += offset
	}
	return line, column
}

// fromCUEError extracts the first error and its position from a CUE parse
// error.
func fromCUEError(err error, offset int) *SyntaxError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &SyntaxError{Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	se := &SyntaxError{Message: fmt.Sprintf(format, args...)}
	if positions := errors.Positions(first); len(positions) > 0 {
		se.Line, se.Column = position(positions[0], offset)
	}
	return se
}
