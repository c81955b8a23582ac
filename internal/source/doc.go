// Package source parses predicate source text into expression trees.
//
// A predicate is a lambda header, an arrow, and a boolean body:
//
//	row => row.Id != 1 || !row.Name.Contains("xyz")
//	(row) => row.Name == null
//	(a, b) => a.Id == b.Id
//
// The header is split off at the first "=>". The body is parsed with the CUE
// expression parser, whose operator set and precedence match the predicate
// language, and the CUE AST is converted to expr nodes. Numeric literals keep
// their exact value: integers become int64, decimals become
// shopspring/decimal values. Arithmetic parses but is left for the translator
// to reject.
package source
