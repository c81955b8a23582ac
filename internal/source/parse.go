package source

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/literal"
	"cuelang.org/go/cue/parser"
	"cuelang.org/go/cue/token"
	"github.com/shopspring/decimal"

	"github.com/roach88/rowfilter/internal/expr"
)

const arrow = "=>"

var binaryOps = map[token.Token]expr.Kind{
	token.LAND: expr.KindAndAlso,
	token.LOR:  expr.KindOrElse,
	token.EQL:  expr.KindEqual,
	token.NEQ:  expr.KindNotEqual,
	token.LSS:  expr.KindLessThan,
	token.LEQ:  expr.KindLessThanOrEqual,
	token.GTR:  expr.KindGreaterThan,
	token.GEQ:  expr.KindGreaterThanOrEqual,
	token.ADD:  expr.KindAdd,
	token.SUB:  expr.KindSubtract,
	token.MUL:  expr.KindMultiply,
	token.QUO:  expr.KindDivide,
}

// Parse parses predicate source into a lambda expression.
//
// Parse only checks syntax. Whether the result is translatable (one
// parameter, supported calls, no arithmetic) is decided by the translator.
func Parse(src string) (*expr.LambdaExpr, error) {
	idx := strings.Index(src, arrow)
	if idx < 0 {
		return nil, &SyntaxError{Message: `missing "=>" after lambda header`}
	}

	params, err := parseHeader(src[:idx])
	if err != nil {
		return nil, err
	}

	offset := idx + len(arrow)
	body := src[offset:]
	if strings.TrimSpace(body) == "" {
		line, col := 1, offset+1
		return nil, &SyntaxError{Message: "empty predicate body", Line: line, Column: col}
	}

	node, err := parser.ParseExpr("predicate", body)
	if err != nil {
		return nil, fromCUEError(err, offset)
	}

	c := &converter{params: params, offset: offset}
	root, err := c.convert(node)
	if err != nil {
		return nil, err
	}
	return expr.Lambda(root, params...), nil
}

// MustParse is like Parse but panics on error. For fixtures and tests.
func MustParse(src string) *expr.LambdaExpr {
	l, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("source.MustParse(%q): %v", src, err))
	}
	return l
}

func parseHeader(header string) ([]*expr.ParamExpr, error) {
	h := strings.TrimSpace(header)
	if h == "" {
		return nil, &SyntaxError{Message: "missing lambda parameter before \"=>\"", Line: 1, Column: 1}
	}

	var names []string
	if strings.HasPrefix(h, "(") {
		if !strings.HasSuffix(h, ")") {
			return nil, &SyntaxError{Message: "unbalanced parentheses in lambda header", Line: 1, Column: 1}
		}
		inner := strings.TrimSpace(h[1 : len(h)-1])
		if inner != "" {
			for _, part := range strings.Split(inner, ",") {
				names = append(names, strings.TrimSpace(part))
			}
		}
	} else {
		names = []string{h}
	}

	params := make([]*expr.ParamExpr, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !isIdentifier(name) {
			return nil, &SyntaxError{Message: fmt.Sprintf("invalid parameter name %q", name), Line: 1, Column: 1}
		}
		if seen[name] {
			return nil, &SyntaxError{Message: fmt.Sprintf("duplicate parameter name %q", name), Line: 1, Column: 1}
		}
		seen[name] = true
		params = append(params, expr.Param(name))
	}
	return params, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

type converter struct {
	params []*expr.ParamExpr
	offset int
}

func (c *converter) errorf(n ast.Node, format string, args ...any) *SyntaxError {
	se := &SyntaxError{Message: fmt.Sprintf(format, args...)}
	se.Line, se.Column = position(n.Pos(), c.offset)
	return se
}

func (c *converter) convert(n ast.Expr) (expr.Node, error) {
	switch e := n.(type) {
	case *ast.ParenExpr:
		return c.convert(e.X)

	case *ast.Ident:
		for _, p := range c.params {
			if p.Name == e.Name {
				return p, nil
			}
		}
		// Left for the translator to report as an unbound reference.
		return expr.Param(e.Name), nil

	case *ast.BasicLit:
		return c.literal(e, false)

	case *ast.UnaryExpr:
		switch e.Op {
		case token.NOT:
			x, err := c.convert(e.X)
			if err != nil {
				return nil, err
			}
			return expr.Not(x), nil
		case token.SUB:
			if lit, ok := e.X.(*ast.BasicLit); ok && (lit.Kind == token.INT || lit.Kind == token.FLOAT) {
				return c.literal(lit, true)
			}
			x, err := c.convert(e.X)
			if err != nil {
				return nil, err
			}
			return expr.Negate(x), nil
		}
		return nil, c.errorf(e, "unsupported unary operator %s", e.Op)

	case *ast.BinaryExpr:
		kind, ok := binaryOps[e.Op]
		if !ok {
			return nil, c.errorf(e, "unsupported operator %s", e.Op)
		}
		left, err := c.convert(e.X)
		if err != nil {
			return nil, err
		}
		right, err := c.convert(e.Y)
		if err != nil {
			return nil, err
		}
		return expr.Binary(kind, left, right), nil

	case *ast.SelectorExpr:
		name, err := c.label(e.Sel)
		if err != nil {
			return nil, err
		}
		x, err := c.convert(e.X)
		if err != nil {
			return nil, err
		}
		return expr.Field(x, name), nil

	case *ast.CallExpr:
		sel, ok := e.Fun.(*ast.SelectorExpr)
		if !ok {
			return nil, c.errorf(e, "calls must be method calls on a value")
		}
		method, err := c.label(sel.Sel)
		if err != nil {
			return nil, err
		}
		recv, err := c.convert(sel.X)
		if err != nil {
			return nil, err
		}
		args := make([]expr.Node, 0, len(e.Args))
		for _, a := range e.Args {
			arg, err := c.convert(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return expr.Call(recv, method, args...), nil
	}

	return nil, c.errorf(n, "unsupported expression %T", n)
}

func (c *converter) label(l ast.Label) (string, error) {
	ident, ok := l.(*ast.Ident)
	if !ok {
		return "", c.errorf(l, "member name must be an identifier")
	}
	return ident.Name, nil
}

func (c *converter) literal(lit *ast.BasicLit, negate bool) (expr.Node, error) {
	switch lit.Kind {
	case token.INT:
		text := strings.ReplaceAll(lit.Value, "_", "")
		if negate {
			text = "-" + text
		}
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return nil, c.errorf(lit, "invalid integer literal %s", lit.Value)
		}
		return expr.Const(v), nil

	case token.FLOAT:
		text := strings.ReplaceAll(lit.Value, "_", "")
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, c.errorf(lit, "invalid decimal literal %s", lit.Value)
		}
		if negate {
			d = d.Neg()
		}
		return expr.Const(d), nil

	case token.STRING:
		s, err := literal.Unquote(lit.Value)
		if err != nil {
			return nil, c.errorf(lit, "invalid string literal: %v", err)
		}
		return expr.Const(s), nil

	case token.TRUE:
		return expr.Const(true), nil

	case token.FALSE:
		return expr.Const(false), nil

	case token.NULL:
		return expr.Null(nil), nil
	}

	return nil, c.errorf(lit, "unsupported literal %s", lit.Value)
}
