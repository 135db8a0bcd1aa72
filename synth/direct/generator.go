// Package direct implements synth.Generator without any parsing. Type
// expressions are looked up in a closed table of pre-built primitive type
// nodes; every other node is built straight from names and integers.
// Isolates the cost of parsing from the cost of node construction.
package direct

import (
	"go/ast"
	"go/token"
	"sort"
	"strconv"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/util"
)

// Name is the strategy name
const Name = "direct"

// primitiveNames is the closed set of type expressions this strategy accepts:
// the Go predeclared basic types.
var primitiveNames = []string{
	"bool",
	"string",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"float32", "float64",
	"complex64", "complex128",
	"byte", "rune",
}

// primitives maps a type expression to its pre-built node. Nodes are copied
// before use so fragments never share mutable state.
var primitives = func() map[string]*ast.Ident {
	m := make(map[string]*ast.Ident, len(primitiveNames))
	for _, name := range primitiveNames {
		m[name] = ast.NewIdent(name)
	}
	return m
}()

// Generator implements synth.Generator with table-driven node construction
type Generator struct{}

// NewGenerator creates a new direct generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Name returns "direct"
func (g *Generator) Name() string {
	return Name
}

// SupportedTypes returns the accepted type expressions, sorted.
func SupportedTypes() []string {
	names := append([]string(nil), primitiveNames...)
	sort.Strings(names)
	return names
}

// Supports reports whether typeExpr is in the closed primitive set.
func Supports(typeExpr string) bool {
	_, ok := primitives[typeExpr]
	return ok
}

// Generate builds the struct declaration, the two Introspector methods and
// the interface binding for s. An attribute type outside the primitive set
// fails with errors.ErrUnsupportedType.
func (g *Generator) Generate(s *model.Struct) (synth.Fragment, error) {
	structName, err := util.ExportName(s.Name)
	if err != nil {
		return nil, synth.StructError(errors.ErrInvalidIdentifier, s, err)
	}

	fields := make([]*ast.Field, len(s.Attributes))
	for i := range s.Attributes {
		a := &s.Attributes[i]

		fieldName, err := util.ExportName(a.Name)
		if err != nil {
			return nil, synth.AttributeError(errors.ErrInvalidIdentifier, s, a, err)
		}

		prebuilt, ok := primitives[a.Type]
		if !ok {
			return nil, synth.AttributeError(errors.ErrUnsupportedType, s, a,
				errors.WithHint(errors.New("not a predeclared basic type"), "use the explicit or templated strategy for composite types"))
		}
		typ := *prebuilt
		var fieldType ast.Expr = &typ
		if a.Optional {
			fieldType = &ast.IndexExpr{
				X:     &ast.SelectorExpr{X: ast.NewIdent(synth.OptionalPackage), Sel: ast.NewIdent(synth.OptionType)},
				Index: fieldType,
			}
		}

		fields[i] = &ast.Field{Names: []*ast.Ident{ast.NewIdent(fieldName)}, Type: fieldType}
	}

	structDecl := &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{
			Name: ast.NewIdent(structName),
			Type: &ast.StructType{Fields: &ast.FieldList{List: fields}},
		}},
	}

	binding := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent("_")},
			Type:   &ast.SelectorExpr{X: ast.NewIdent(synth.ModelPackage), Sel: ast.NewIdent(synth.IntrospectorType)},
			Values: []ast.Expr{&ast.CompositeLit{Type: ast.NewIdent(structName)}},
		}},
	}

	return &synth.DeclFragment{
		Decls: []ast.Decl{
			structDecl,
			countMethod(structName, synth.MethodNumberOfAttributes, s.AttributeCount()),
			countMethod(structName, synth.MethodNumberOfOptionalFields, s.OptionalCount()),
			binding,
		},
	}, nil
}

func countMethod(structName, method string, n int) *ast.FuncDecl {
	return &ast.FuncDecl{
		Recv: &ast.FieldList{List: []*ast.Field{{Type: ast.NewIdent(structName)}}},
		Name: ast.NewIdent(method),
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{Type: ast.NewIdent("int")}}},
		},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ReturnStmt{Results: []ast.Expr{&ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(n)}}},
		}},
	}
}
