package filter

import (
	"reflect"

	"github.com/roach88/rowfilter/internal/expr"
)

// Node is a boolean-producing filter node.
// This is a sealed interface - only types in this package implement it.
type Node interface {
	// IsCompound reports whether the node must be parenthesized when it is
	// embedded under a logic node.
	IsCompound() bool

	// QueryText renders the node.
	QueryText() string

	filterNode() // Marker method - seals interface to this package
}

// Operand is a value on either side of a Comparison.
// This is a sealed interface - only types in this package implement it.
type Operand interface {
	// IsNull reports whether the operand is a null literal.
	IsNull() bool

	// QueryText renders the operand.
	QueryText() string

	operandNode() // Marker method - seals interface to this package
}

// UnaryOperator is the operator of a UnaryLogic node.
type UnaryOperator string

const (
	OpNot UnaryOperator = "NOT"
)

// LogicOperator is the operator of a BinaryLogic node.
type LogicOperator string

const (
	OpAnd LogicOperator = "AND"
	OpOr  LogicOperator = "OR"
)

// ComparisonOperator is the operator of a Comparison node.
type ComparisonOperator string

const (
	OpEqual        ComparisonOperator = "EQ"
	OpNotEqual     ComparisonOperator = "NEQ"
	OpLessThan     ComparisonOperator = "LT"
	OpLessEqual    ComparisonOperator = "LTE"
	OpGreaterThan  ComparisonOperator = "GT"
	OpGreaterEqual ComparisonOperator = "GTE"
	OpContains     ComparisonOperator = "CONTAINS"
	OpStartsWith   ComparisonOperator = "STARTS_WITH"
	OpEndsWith     ComparisonOperator = "ENDS_WITH"
)

// IsPattern reports whether op renders as a LIKE pattern match.
func (op ComparisonOperator) IsPattern() bool {
	return op == OpContains || op == OpStartsWith || op == OpEndsWith
}

// IsOrdering reports whether op is one of <, <=, >, >=.
func (op ComparisonOperator) IsOrdering() bool {
	switch op {
	case OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual:
		return true
	}
	return false
}

// UnaryLogic negates its operand.
type UnaryLogic struct {
	Op      UnaryOperator
	Operand Node
}

func (*UnaryLogic) filterNode()      {}
func (*UnaryLogic) IsCompound() bool { return true }

// BinaryLogic combines two filters with AND or OR.
type BinaryLogic struct {
	Op    LogicOperator
	Left  Node
	Right Node
}

func (*BinaryLogic) filterNode()      {}
func (*BinaryLogic) IsCompound() bool { return true }

// Comparison compares two operands.
type Comparison struct {
	Op    ComparisonOperator
	Left  Operand
	Right Operand
}

func (*Comparison) filterNode()      {}
func (*Comparison) IsCompound() bool { return false }

// MemberAccess references a field of the bound row.
type MemberAccess struct {
	Name string
}

func (*MemberAccess) operandNode()  {}
func (*MemberAccess) IsNull() bool { return false }

// Constant is a literal value. When BoundName is set the constant renders as
// that bind parameter instead of its literal text.
type Constant struct {
	Type      reflect.Type
	Value     any
	BoundName string
}

func (*Constant) operandNode() {}

// IsNull reports whether Value is absent.
func (c *Constant) IsNull() bool { return expr.IsNullValue(c.Value) }

// Not creates a NOT node.
func Not(operand Node) *UnaryLogic {
	return &UnaryLogic{Op: OpNot, Operand: operand}
}

// And creates an AND node.
func And(left, right Node) *BinaryLogic {
	return &BinaryLogic{Op: OpAnd, Left: left, Right: right}
}

// Or creates an OR node.
func Or(left, right Node) *BinaryLogic {
	return &BinaryLogic{Op: OpOr, Left: left, Right: right}
}

// Compare creates a comparison node.
func Compare(op ComparisonOperator, left, right Operand) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

// Member creates a field reference.
func Member(name string) *MemberAccess {
	return &MemberAccess{Name: name}
}

// Value creates a constant declared as the dynamic type of v.
func Value(v any) *Constant {
	return &Constant{Type: reflect.TypeOf(v), Value: v}
}
