// Package util holds helpers shared by the generation strategies.
package util

import (
	"go/ast"
	"go/parser"

	"github.com/teranos/synbench/errors"
)

// ParseType parses a type expression. parser.ParseExpr accepts any
// expression, so the result is also checked with ValidTypeExpr; both kinds
// of failure are marked errors.ErrParseFailure.
func ParseType(expr string) (ast.Expr, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrParseFailure)
	}
	if !ValidTypeExpr(node) {
		return nil, errors.Mark(errors.Newf("%q is not a type expression", expr), errors.ErrParseFailure)
	}
	return node, nil
}

// ValidTypeExpr reports whether a parsed expression is a type reference:
// a named or qualified type, a generic instantiation, or a composite type
// built from those.
func ValidTypeExpr(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name != "_"

	case *ast.SelectorExpr:
		// Qualified type like time.Time
		_, ok := t.X.(*ast.Ident)
		return ok

	case *ast.ParenExpr:
		return ValidTypeExpr(t.X)

	case *ast.StarExpr:
		return ValidTypeExpr(t.X)

	case *ast.ArrayType:
		// [...]T is only valid inside composite literals
		if _, ok := t.Len.(*ast.Ellipsis); ok {
			return false
		}
		return ValidTypeExpr(t.Elt)

	case *ast.MapType:
		return ValidTypeExpr(t.Key) && ValidTypeExpr(t.Value)

	case *ast.ChanType:
		return ValidTypeExpr(t.Value)

	case *ast.FuncType:
		return validFieldTypes(t.Params, true) && validFieldTypes(t.Results, false)

	case *ast.StructType:
		return validFieldTypes(t.Fields, false)

	case *ast.InterfaceType:
		return true

	case *ast.IndexExpr:
		return isTypeName(t.X) && ValidTypeExpr(t.Index)

	case *ast.IndexListExpr:
		if !isTypeName(t.X) {
			return false
		}
		for _, index := range t.Indices {
			if !ValidTypeExpr(index) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// validFieldTypes checks every field type of a parameter, result or struct
// field list. Variadic ...T is accepted in the last parameter only.
func validFieldTypes(fields *ast.FieldList, params bool) bool {
	if fields == nil {
		return true
	}
	for i, field := range fields.List {
		if ellipsis, ok := field.Type.(*ast.Ellipsis); ok {
			if !params || i != len(fields.List)-1 || !ValidTypeExpr(ellipsis.Elt) {
				return false
			}
			continue
		}
		if !ValidTypeExpr(field.Type) {
			return false
		}
	}
	return true
}

// isTypeName checks for a plain or qualified type name, the only forms that
// can be instantiated with type arguments.
func isTypeName(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name != "_"
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	default:
		return false
	}
}
