// Package filter provides the query-filter AST produced by the translator and
// its text rendering.
//
// Two sealed families make up the tree:
//
//	Node     (boolean-producing)  UnaryLogic, BinaryLogic, Comparison
//	Operand  (value-producing)    MemberAccess, Constant
//
// Logic nodes hold Node children only and comparisons hold Operand children
// only, so the two families cannot be mixed.
//
// RENDERING:
//
// Every node renders itself with QueryText and needs no state beyond its
// children. Logic nodes are compound: they are parenthesized when nested
// under another logic node. Comparisons never are.
//
//	UnaryLogic(NOT, x)         NOT x
//	BinaryLogic(AND, l, r)     l AND r
//	Comparison(EQ, l, NULL)    l IS NULL
//	Comparison(NEQ, l, r)      l <> r
//	Comparison(CONTAINS, l, r) LIKE('%' || r || '%', l)
//
// Pattern operators use SQLite's like(X, Y) function form, which is
// equivalent to "Y LIKE X". Wildcard characters already present in the
// pattern value are not escaped; Inspect reports them.
package filter
