// Package expr provides the predicate expression tree consumed by the
// translator.
//
// The tree is the Go rendition of a parsed lambda predicate such as
//
//	row => row.Id != 1 || !row.Name.Contains("xyz")
//
// Node is a sealed interface using the marker method pattern. Only types in
// this package implement it, so consumers can dispatch with exhaustive type
// switches and fail on anything they do not understand:
//
//	switch n := node.(type) {
//	case *LambdaExpr:
//	case *UnaryExpr:
//	case *BinaryExpr:
//	case *MemberExpr:
//	case *ConstExpr:
//	case *CallExpr:
//	case *ParamExpr:
//	}
//
// The package also carries the kinds the translator rejects (arithmetic,
// negation, nested lambdas). Keeping them in the closed set lets producers
// describe any expression they parsed while the translator stays the single
// place that decides what is supported.
//
// Fingerprint gives every tree a content-addressed identity computed from its
// canonical JSON encoding (sorted keys, NFC-normalized strings, SHA-256 with
// domain separation).
package expr
