package translate

import (
	"database/sql"
	"slices"
	"strings"
	"sync"

	"github.com/roach88/rowfilter/internal/filter"
)

// Statement is the result of a translation. It is immutable once returned;
// the query text is rendered on the first QueryText call and reused.
type Statement struct {
	filter filter.Node
	params []BindParameter

	once sync.Once
	text string
}

func newStatement(f filter.Node, params []BindParameter) *Statement {
	return &Statement{filter: f, params: params}
}

// Filter returns the root of the filter tree.
func (s *Statement) Filter() filter.Node {
	return s.filter
}

// Parameters returns the bind parameters in walk order. The returned slice is
// a copy.
func (s *Statement) Parameters() []BindParameter {
	return slices.Clone(s.params)
}

// QueryText returns the rendered filter text.
func (s *Statement) QueryText() string {
	s.once.Do(func() {
		s.text = s.filter.QueryText()
	})
	return s.text
}

// NamedArgs returns the parameters as sql.NamedArg values, with the leading
// "@" removed, for database/sql drivers and GORM.
func (s *Statement) NamedArgs() []any {
	args := make([]any, len(s.params))
	for i, p := range s.params {
		args[i] = sql.Named(strings.TrimPrefix(p.Name, "@"), p.Value)
	}
	return args
}
