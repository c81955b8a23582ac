package translate

import (
	"fmt"
	"reflect"
)

// BindParameter is a named placeholder and the value bound to it.
type BindParameter struct {
	Name  string
	Type  reflect.Type
	Value any
}

// BuildContext carries per-translation state: the name of the bound lambda
// parameter and the bind names issued so far. Each Translate call owns one.
type BuildContext struct {
	ParameterName string

	used   map[string]int
	issued map[string]bool
}

// NewBuildContext creates a context for a lambda whose parameter is named
// paramName.
func NewBuildContext(paramName string) *BuildContext {
	return &BuildContext{
		ParameterName: paramName,
		used:          make(map[string]int),
		issued:        make(map[string]bool),
	}
}

// BindName returns the next bind name for field: "@field" on first use,
// then "@field_2", "@field_3" and so on. A candidate already issued for a
// different field (a field literally named "Name_2", say) is skipped.
func (c *BuildContext) BindName(field string) string {
	for {
		c.used[field]++
		name := "@" + field
		if n := c.used[field]; n > 1 {
			name = fmt.Sprintf("@%s_%d", field, n)
		}
		if !c.issued[name] {
			c.issued[name] = true
			return name
		}
	}
}
