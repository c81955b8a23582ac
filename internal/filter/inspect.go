package filter

import (
	"fmt"
	"strings"
)

// WarningCode identifies the kind of issue Inspect found.
type WarningCode string

const (
	// WarnUnescapedWildcard: a pattern value contains % or _ which LIKE
	// treats as wildcards.
	WarnUnescapedWildcard WarningCode = "UNESCAPED_WILDCARD"

	// WarnNullOrdering: an ordering comparison against NULL, which is never
	// true in SQL.
	WarnNullOrdering WarningCode = "NULL_ORDERING"

	// WarnDoubleNull: both sides of an equality are NULL.
	WarnDoubleNull WarningCode = "DOUBLE_NULL"

	// WarnLiteralComparison: neither side references a field.
	WarnLiteralComparison WarningCode = "LITERAL_COMPARISON"

	// WarnNilNode: the tree contains a nil node.
	WarnNilNode WarningCode = "NIL_NODE"
)

// Warning is a single finding from Inspect.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}

// Report is the result of Inspect.
type Report struct {
	// Clean is true when no warnings were found.
	Clean bool

	// Warnings lists findings in tree walk order (left before right).
	Warnings []Warning
}

// Inspect walks a filter tree and reports constructs that translate
// correctly but probably do not mean what the author expects once rendered.
//
// Checks:
//  1. Pattern values containing LIKE wildcards (% and _), which are not escaped
//  2. Ordering comparisons (<, <=, >, >=) against NULL
//  3. Equality comparisons with NULL on both sides
//  4. Comparisons with no field reference on either side
//
// Inspect is a pure function with no side effects.
func Inspect(n Node) Report {
	ins := &inspector{
		warnings: []Warning{},
	}
	ins.inspectNode(n)

	return Report{
		Clean:    len(ins.warnings) == 0,
		Warnings: ins.warnings,
	}
}

// inspector accumulates warnings during traversal.
type inspector struct {
	warnings []Warning
}

func (ins *inspector) addWarning(code WarningCode, format string, args ...any) {
	ins.warnings = append(ins.warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (ins *inspector) inspectNode(n Node) {
	switch node := n.(type) {
	case nil:
		ins.addWarning(WarnNilNode, "nil filter node")
	case *UnaryLogic:
		if node == nil {
			ins.addWarning(WarnNilNode, "nil filter node")
			return
		}
		ins.inspectNode(node.Operand)
	case *BinaryLogic:
		if node == nil {
			ins.addWarning(WarnNilNode, "nil filter node")
			return
		}
		ins.inspectNode(node.Left)
		ins.inspectNode(node.Right)
	case *Comparison:
		if node == nil || node.Left == nil || node.Right == nil {
			ins.addWarning(WarnNilNode, "nil comparison or operand")
			return
		}
		ins.inspectComparison(node)
	}
}

func (ins *inspector) inspectComparison(c *Comparison) {
	_, leftMember := c.Left.(*MemberAccess)
	_, rightMember := c.Right.(*MemberAccess)

	switch {
	case (c.Op == OpEqual || c.Op == OpNotEqual) && c.Left.IsNull() && c.Right.IsNull():
		ins.addWarning(WarnDoubleNull, "%s compares NULL with NULL", c.Op)
	case !leftMember && !rightMember:
		ins.addWarning(WarnLiteralComparison, "%s has no field reference on either side", c.Op)
	}

	if c.Op.IsOrdering() && (c.Left.IsNull() || c.Right.IsNull()) {
		ins.addWarning(WarnNullOrdering, "%s against NULL never matches", c.Op)
	}

	if c.Op.IsPattern() {
		if k, ok := c.Right.(*Constant); ok && !k.IsNull() {
			text := fmt.Sprint(k.Value)
			if strings.ContainsAny(text, "%_") {
				ins.addWarning(WarnUnescapedWildcard, "%s pattern %q contains LIKE wildcards", c.Op, text)
			}
		}
	}
}
