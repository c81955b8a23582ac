// Package translate turns a single-parameter predicate expression into a
// filter tree plus an ordered list of bind parameters.
//
// Translate walks the tree once, top down. Logic nodes (AndAlso, OrElse,
// Not) recurse, relational nodes and the pattern calls Contains, StartsWith
// and EndsWith become comparisons. Every comparison between a field of the
// bound parameter and a non-null constant produces a bind parameter named
// after the field:
//
//	row => row.Id != 1 || row.Id == 2
//	Id <> @Id OR Id = @Id_2     [@Id=1, @Id_2=2]
//
// Comparisons against null constants are rendered as IS NULL / IS NOT NULL
// and never bind. Any expression kind outside this set fails with an *Error
// naming the offending node.
//
// A Statement's query text is rendered on first use and cached. Cache adds a
// bounded cross-call memo keyed by expression fingerprint.
package translate
