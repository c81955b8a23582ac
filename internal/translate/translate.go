package translate

import (
	"github.com/roach88/rowfilter/internal/expr"
	"github.com/roach88/rowfilter/internal/filter"
)

var relationalOps = map[expr.Kind]filter.ComparisonOperator{
	expr.KindEqual:              filter.OpEqual,
	expr.KindNotEqual:           filter.OpNotEqual,
	expr.KindLessThan:           filter.OpLessThan,
	expr.KindLessThanOrEqual:    filter.OpLessEqual,
	expr.KindGreaterThan:        filter.OpGreaterThan,
	expr.KindGreaterThanOrEqual: filter.OpGreaterEqual,
}

var patternMethods = map[string]filter.ComparisonOperator{
	"Contains":   filter.OpContains,
	"StartsWith": filter.OpStartsWith,
	"EndsWith":   filter.OpEndsWith,
}

// Translate converts a single-parameter lambda into a Statement.
//
// On failure it returns nil and an *Error. No partial result is produced.
func Translate(root expr.Node) (*Statement, error) {
	lambda, ok := root.(*expr.LambdaExpr)
	if !ok {
		return nil, newError(ErrInvalidRoot, root, "root must be a lambda, got %s", kindOf(root))
	}
	if lambda == nil {
		return nil, newError(ErrInvalidRoot, nil, "root is a nil lambda")
	}
	if len(lambda.Params) != 1 {
		return nil, newError(ErrArity, root, "lambda must have exactly 1 parameter, got %d", len(lambda.Params))
	}
	if lambda.Params[0] == nil {
		return nil, newError(ErrInvalidRoot, root, "lambda parameter is nil")
	}

	t := &translator{ctx: NewBuildContext(lambda.Params[0].Name)}
	f, err := t.filter(lambda.Body)
	if err != nil {
		return nil, err
	}
	return newStatement(f, t.params), nil
}

type translator struct {
	ctx    *BuildContext
	params []BindParameter
}

func (t *translator) filter(n expr.Node) (filter.Node, error) {
	if expr.IsNilNode(n) {
		return nil, newError(ErrUnsupportedNode, nil, "filter expression is nil")
	}
	switch e := n.(type) {
	case *expr.UnaryExpr:
		if e.Op != expr.KindNot {
			break
		}
		operand, err := t.filter(e.X)
		if err != nil {
			return nil, err
		}
		return filter.Not(operand), nil

	case *expr.BinaryExpr:
		switch {
		case e.Op == expr.KindAndAlso || e.Op == expr.KindOrElse:
			left, err := t.filter(e.Left)
			if err != nil {
				return nil, err
			}
			right, err := t.filter(e.Right)
			if err != nil {
				return nil, err
			}
			if e.Op == expr.KindAndAlso {
				return filter.And(left, right), nil
			}
			return filter.Or(left, right), nil
		case e.Op.IsRelational():
			return t.comparison(relationalOps[e.Op], e.Left, e.Right)
		}

	case *expr.CallExpr:
		op, ok := patternMethods[e.Method]
		if !ok {
			return nil, newError(ErrUnsupportedCall, n, "method %q is not supported", e.Method)
		}
		if len(e.Args) != 1 {
			return nil, newError(ErrArity, n, "%s takes exactly 1 argument, got %d", e.Method, len(e.Args))
		}
		return t.comparison(op, e.X, e.Args[0])
	}

	return nil, newError(ErrUnsupportedNode, n, "%s is not a supported filter expression", kindOf(n))
}

func (t *translator) comparison(op filter.ComparisonOperator, l, r expr.Node) (*filter.Comparison, error) {
	left, err := t.operand(l)
	if err != nil {
		return nil, err
	}
	right, err := t.operand(r)
	if err != nil {
		return nil, err
	}
	c := filter.Compare(op, left, right)
	t.bind(c)
	return c, nil
}

func (t *translator) operand(n expr.Node) (filter.Operand, error) {
	if expr.IsNilNode(n) {
		return nil, newError(ErrUnsupportedNode, nil, "comparison operand is nil")
	}
	switch e := n.(type) {
	case *expr.ConstExpr:
		return &filter.Constant{Type: e.Type, Value: e.Value}, nil
	case *expr.MemberExpr:
		p, ok := e.X.(*expr.ParamExpr)
		if !ok || p == nil {
			return nil, newError(ErrUnboundReference, n, "member %q must be accessed on the lambda parameter", e.Name)
		}
		if p.Name != t.ctx.ParameterName {
			return nil, newError(ErrUnboundReference, n, "parameter %q is not bound (expected %q)", p.Name, t.ctx.ParameterName)
		}
		return filter.Member(e.Name), nil
	}
	return nil, newError(ErrUnsupportedNode, n, "%s is not a supported comparison operand", kindOf(n))
}

// bind names the constant side of a field-versus-constant comparison.
// Null constants and comparisons without a field stay unbound.
func (t *translator) bind(c *filter.Comparison) {
	var member *filter.MemberAccess
	if m, ok := c.Left.(*filter.MemberAccess); ok {
		member = m
	} else if m, ok := c.Right.(*filter.MemberAccess); ok {
		member = m
	}

	var constant *filter.Constant
	if k, ok := c.Left.(*filter.Constant); ok && !k.IsNull() {
		constant = k
	} else if k, ok := c.Right.(*filter.Constant); ok && !k.IsNull() {
		constant = k
	}

	if member == nil || constant == nil {
		return
	}

	name := t.ctx.BindName(member.Name)
	t.params = append(t.params, BindParameter{Name: name, Type: constant.Type, Value: constant.Value})
	constant.BoundName = name
}
