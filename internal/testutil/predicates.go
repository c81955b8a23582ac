package testutil

import (
	"reflect"

	"github.com/roach88/rowfilter/internal/expr"
)

// Row returns the conventional bound parameter, named "row".
func Row() *expr.ParamExpr {
	return expr.Param("row")
}

// NotEqualID builds: row => row.Id != 1
func NotEqualID() *expr.LambdaExpr {
	row := Row()
	return expr.Lambda(expr.NotEqual(expr.Field(row, "Id"), expr.Const(int64(1))), row)
}

// MixedLogic builds:
//
//	row => row.Id != 1 || !row.Name.Contains("xyz") && row.Name.StartsWith("yy")
func MixedLogic() *expr.LambdaExpr {
	row := Row()
	name := expr.Field(row, "Name")
	return expr.Lambda(
		expr.OrElse(
			expr.NotEqual(expr.Field(row, "Id"), expr.Const(int64(1))),
			expr.AndAlso(
				expr.Not(expr.Call(name, "Contains", expr.Const("xyz"))),
				expr.Call(expr.Field(row, "Name"), "StartsWith", expr.Const("yy")),
			),
		),
		row,
	)
}

// NameIsNull builds: row => row.Name == null
func NameIsNull() *expr.LambdaExpr {
	row := Row()
	return expr.Lambda(expr.Equal(expr.Field(row, "Name"), expr.Null(reflect.TypeOf(""))), row)
}

// TwoParams builds: (a, b) => a.Id == b.Id
func TwoParams() *expr.LambdaExpr {
	a, b := expr.Param("a"), expr.Param("b")
	return expr.Lambda(expr.Equal(expr.Field(a, "Id"), expr.Field(b, "Id")), a, b)
}

// TrimCall builds: row => row.Name.Trim("x")
func TrimCall() *expr.LambdaExpr {
	row := Row()
	return expr.Lambda(expr.Call(expr.Field(row, "Name"), "Trim", expr.Const("x")), row)
}
