package filter

import "fmt"

// QueryText renders the member as its bare field name.
func (m *MemberAccess) QueryText() string {
	return m.Name
}

// QueryText renders the bind name if bound, NULL if absent, and the value's
// text form otherwise.
func (c *Constant) QueryText() string {
	if c.BoundName != "" {
		return c.BoundName
	}
	if c.IsNull() {
		return "NULL"
	}
	return fmt.Sprint(c.Value)
}

// QueryText renders "NOT <operand>".
func (u *UnaryLogic) QueryText() string {
	operand := wrap(u.Operand)
	switch u.Op {
	case OpNot:
		return "NOT " + operand
	default:
		panic(fmt.Sprintf("filter: unexpected unary operator %q", u.Op))
	}
}

// QueryText renders "<left> AND <right>" or "<left> OR <right>".
func (b *BinaryLogic) QueryText() string {
	left := wrap(b.Left)
	right := wrap(b.Right)
	switch b.Op {
	case OpAnd:
		return left + " AND " + right
	case OpOr:
		return left + " OR " + right
	default:
		panic(fmt.Sprintf("filter: unexpected logic operator %q", b.Op))
	}
}

// QueryText renders the comparison. Equality against a null operand renders
// as IS NULL / IS NOT NULL on the other side.
func (c *Comparison) QueryText() string {
	switch c.Op {
	case OpEqual:
		return c.nullAware("IS NULL", "=")
	case OpNotEqual:
		return c.nullAware("IS NOT NULL", "<>")
	case OpGreaterThan:
		return c.Left.QueryText() + " > " + c.Right.QueryText()
	case OpGreaterEqual:
		return c.Left.QueryText() + " >= " + c.Right.QueryText()
	case OpLessThan:
		return c.Left.QueryText() + " < " + c.Right.QueryText()
	case OpLessEqual:
		return c.Left.QueryText() + " <= " + c.Right.QueryText()
	case OpContains:
		return "LIKE('%' || " + c.Right.QueryText() + " || '%', " + c.Left.QueryText() + ")"
	case OpStartsWith:
		return "LIKE(" + c.Right.QueryText() + " || '%', " + c.Left.QueryText() + ")"
	case OpEndsWith:
		return "LIKE('%' || " + c.Right.QueryText() + ", " + c.Left.QueryText() + ")"
	default:
		panic(fmt.Sprintf("filter: unexpected comparison operator %q", c.Op))
	}
}

func (c *Comparison) nullAware(nullCheck, op string) string {
	if c.Left.IsNull() {
		return c.Right.QueryText() + " " + nullCheck
	}
	if c.Right.IsNull() {
		return c.Left.QueryText() + " " + nullCheck
	}
	return c.Left.QueryText() + " " + op + " " + c.Right.QueryText()
}

func wrap(n Node) string {
	if n.IsCompound() {
		return "(" + n.QueryText() + ")"
	}
	return n.QueryText()
}
