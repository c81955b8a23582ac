package expr

// Kind identifies the operation a node performs.
type Kind string

const (
	KindLambda    Kind = "Lambda"
	KindParameter Kind = "Parameter"
	KindMember    Kind = "MemberAccess"
	KindConstant  Kind = "Constant"
	KindCall      Kind = "Call"

	// Unary operators.
	KindNot    Kind = "Not"
	KindNegate Kind = "Negate"

	// Logical operators.
	KindAndAlso Kind = "AndAlso"
	KindOrElse  Kind = "OrElse"

	// Relational operators.
	KindEqual              Kind = "Equal"
	KindNotEqual           Kind = "NotEqual"
	KindLessThan           Kind = "LessThan"
	KindLessThanOrEqual    Kind = "LessThanOrEqual"
	KindGreaterThan        Kind = "GreaterThan"
	KindGreaterThanOrEqual Kind = "GreaterThanOrEqual"

	// Arithmetic operators.
	KindAdd      Kind = "Add"
	KindSubtract Kind = "Subtract"
	KindMultiply Kind = "Multiply"
	KindDivide   Kind = "Divide"
	KindModulo   Kind = "Modulo"
)

// IsLogical reports whether k is AndAlso or OrElse.
func (k Kind) IsLogical() bool {
	return k == KindAndAlso || k == KindOrElse
}

// IsRelational reports whether k is one of the six comparison operators.
func (k Kind) IsRelational() bool {
	switch k {
	case KindEqual, KindNotEqual,
		KindLessThan, KindLessThanOrEqual,
		KindGreaterThan, KindGreaterThanOrEqual:
		return true
	}
	return false
}

// IsArithmetic reports whether k is a binary arithmetic operator.
func (k Kind) IsArithmetic() bool {
	switch k {
	case KindAdd, KindSubtract, KindMultiply, KindDivide, KindModulo:
		return true
	}
	return false
}

// Symbol returns the source operator for unary and binary kinds, or "" for
// kinds that have none.
func (k Kind) Symbol() string {
	switch k {
	case KindNot:
		return "!"
	case KindNegate, KindSubtract:
		return "-"
	case KindAndAlso:
		return "&&"
	case KindOrElse:
		return "||"
	case KindEqual:
		return "=="
	case KindNotEqual:
		return "!="
	case KindLessThan:
		return "<"
	case KindLessThanOrEqual:
		return "<="
	case KindGreaterThan:
		return ">"
	case KindGreaterThanOrEqual:
		return ">="
	case KindAdd:
		return "+"
	case KindMultiply:
		return "*"
	case KindDivide:
		return "/"
	case KindModulo:
		return "%"
	}
	return ""
}

// precedence orders binary operators for formatting. Higher binds tighter.
func (k Kind) precedence() int {
	switch {
	case k == KindOrElse:
		return 1
	case k == KindAndAlso:
		return 2
	case k.IsRelational():
		return 3
	case k == KindAdd || k == KindSubtract:
		return 4
	case k == KindMultiply || k == KindDivide || k == KindModulo:
		return 5
	}
	return 6
}
