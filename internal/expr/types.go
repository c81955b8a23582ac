package expr

import "reflect"

// Node is a sealed interface over expression tree nodes.
// Only types in this package implement it.
type Node interface {
	// Kind returns the operation of the node. For UnaryExpr and BinaryExpr
	// this is the operator.
	Kind() Kind

	exprNode() // Marker method - seals interface to this package
}

// LambdaExpr is a predicate with its parameter list and body.
type LambdaExpr struct {
	Params []*ParamExpr
	Body   Node
}

func (*LambdaExpr) exprNode()  {}
func (*LambdaExpr) Kind() Kind { return KindLambda }

// ParamExpr is a reference to a lambda parameter by name.
type ParamExpr struct {
	Name string
}

func (*ParamExpr) exprNode()  {}
func (*ParamExpr) Kind() Kind { return KindParameter }

// UnaryExpr applies Op (KindNot or KindNegate) to X.
type UnaryExpr struct {
	Op Kind
	X  Node
}

func (*UnaryExpr) exprNode()    {}
func (e *UnaryExpr) Kind() Kind { return e.Op }

// BinaryExpr applies a logical, relational or arithmetic Op to two operands.
type BinaryExpr struct {
	Op    Kind
	Left  Node
	Right Node
}

func (*BinaryExpr) exprNode()    {}
func (e *BinaryExpr) Kind() Kind { return e.Op }

// MemberExpr reads the field Name of X.
type MemberExpr struct {
	X    Node
	Name string
}

func (*MemberExpr) exprNode()  {}
func (*MemberExpr) Kind() Kind { return KindMember }

// ConstExpr is a literal value with its declared type.
// A nil Value (or a typed nil pointer) is a null constant.
type ConstExpr struct {
	Type  reflect.Type
	Value any
}

func (*ConstExpr) exprNode()  {}
func (*ConstExpr) Kind() Kind { return KindConstant }

// IsNull reports whether the constant carries no value.
func (e *ConstExpr) IsNull() bool {
	return IsNullValue(e.Value)
}

// CallExpr invokes Method on receiver X with Args.
type CallExpr struct {
	X      Node
	Method string
	Args   []Node
}

func (*CallExpr) exprNode()  {}
func (*CallExpr) Kind() Kind { return KindCall }

// IsNilNode reports whether n is nil or a typed nil node pointer.
func IsNilNode(n Node) bool {
	return IsNullValue(n)
}

// IsNullValue reports whether v is nil or a nil pointer, map, slice,
// interface, func or channel.
func IsNullValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Lambda creates a lambda over params with the given body.
func Lambda(body Node, params ...*ParamExpr) *LambdaExpr {
	return &LambdaExpr{Params: params, Body: body}
}

// Param creates a parameter reference.
func Param(name string) *ParamExpr {
	return &ParamExpr{Name: name}
}

// Not creates a logical negation.
func Not(x Node) *UnaryExpr {
	return &UnaryExpr{Op: KindNot, X: x}
}

// Negate creates an arithmetic negation.
func Negate(x Node) *UnaryExpr {
	return &UnaryExpr{Op: KindNegate, X: x}
}

// Binary creates a binary node for op.
func Binary(op Kind, left, right Node) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

// AndAlso creates a short-circuit conjunction.
func AndAlso(left, right Node) *BinaryExpr { return Binary(KindAndAlso, left, right) }

// OrElse creates a short-circuit disjunction.
func OrElse(left, right Node) *BinaryExpr { return Binary(KindOrElse, left, right) }

// Equal creates left == right.
func Equal(left, right Node) *BinaryExpr { return Binary(KindEqual, left, right) }

// NotEqual creates left != right.
func NotEqual(left, right Node) *BinaryExpr { return Binary(KindNotEqual, left, right) }

// LessThan creates left < right.
func LessThan(left, right Node) *BinaryExpr { return Binary(KindLessThan, left, right) }

// LessThanOrEqual creates left <= right.
func LessThanOrEqual(left, right Node) *BinaryExpr {
	return Binary(KindLessThanOrEqual, left, right)
}

// GreaterThan creates left > right.
func GreaterThan(left, right Node) *BinaryExpr { return Binary(KindGreaterThan, left, right) }

// GreaterThanOrEqual creates left >= right.
func GreaterThanOrEqual(left, right Node) *BinaryExpr {
	return Binary(KindGreaterThanOrEqual, left, right)
}

// Add creates left + right.
func Add(left, right Node) *BinaryExpr { return Binary(KindAdd, left, right) }

// Field creates a member access of name on x.
func Field(x Node, name string) *MemberExpr {
	return &MemberExpr{X: x, Name: name}
}

// Const creates a constant whose declared type is the dynamic type of v.
// Const(nil) is an untyped null.
func Const(v any) *ConstExpr {
	return &ConstExpr{Type: reflect.TypeOf(v), Value: v}
}

// TypedConst creates a constant with an explicit declared type.
func TypedConst(t reflect.Type, v any) *ConstExpr {
	return &ConstExpr{Type: t, Value: v}
}

// Null creates a null constant declared as t.
func Null(t reflect.Type) *ConstExpr {
	return &ConstExpr{Type: t}
}

// Call creates a method call on x.
func Call(x Node, method string, args ...Node) *CallExpr {
	return &CallExpr{X: x, Method: method, Args: args}
}
