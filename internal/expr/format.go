package expr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Format renders n as predicate source text, e.g.
//
//	row => row.Id != 1 || !row.Name.Contains("xyz")
//
// Parentheses are emitted only where operator precedence requires them, so
// Format output parses back to the same tree.
func Format(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	if IsNilNode(n) {
		b.WriteString("<nil>")
		return
	}
	switch e := n.(type) {
	case *LambdaExpr:
		writeLambda(b, e)
	case *ParamExpr:
		b.WriteString(e.Name)
	case *UnaryExpr:
		b.WriteString(e.Op.Symbol())
		writeOperand(b, e.X)
	case *BinaryExpr:
		prec := e.Op.precedence()
		writeWrapped(b, e.Left, precedenceOf(e.Left) < prec)
		b.WriteString(" ")
		b.WriteString(e.Op.Symbol())
		b.WriteString(" ")
		writeWrapped(b, e.Right, precedenceOf(e.Right) <= prec)
	case *MemberExpr:
		writeOperand(b, e.X)
		b.WriteString(".")
		b.WriteString(e.Name)
	case *CallExpr:
		writeOperand(b, e.X)
		b.WriteString(".")
		b.WriteString(e.Method)
		b.WriteString("(")
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, arg)
		}
		b.WriteString(")")
	case *ConstExpr:
		b.WriteString(FormatValue(e.Value))
	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

func writeLambda(b *strings.Builder, e *LambdaExpr) {
	if len(e.Params) == 1 && e.Params[0] != nil {
		b.WriteString(e.Params[0].Name)
	} else {
		b.WriteString("(")
		for i, p := range e.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if p != nil {
				b.WriteString(p.Name)
			}
		}
		b.WriteString(")")
	}
	b.WriteString(" => ")
	writeNode(b, e.Body)
}

// writeOperand writes a primary position node (receiver or unary operand).
func writeOperand(b *strings.Builder, n Node) {
	switch n.(type) {
	case *BinaryExpr, *LambdaExpr:
		writeWrapped(b, n, true)
	default:
		writeNode(b, n)
	}
}

func writeWrapped(b *strings.Builder, n Node, wrap bool) {
	if wrap {
		b.WriteString("(")
	}
	writeNode(b, n)
	if wrap {
		b.WriteString(")")
	}
}

func precedenceOf(n Node) int {
	switch e := n.(type) {
	case *BinaryExpr:
		return e.Op.precedence()
	case *LambdaExpr:
		return 0
	}
	return 6
}

// FormatValue renders a constant value as a source literal: strings quoted,
// null as "null", pointers dereferenced, everything else in its fmt form.
func FormatValue(v any) string {
	if IsNullValue(v) {
		return "null"
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(rv.Interface())
}
