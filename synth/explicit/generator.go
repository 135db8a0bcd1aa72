// Package explicit implements synth.Generator by constructing every go/ast
// node of the output with explicit composite literals. Leaf type expressions
// are the only parsed syntax.
package explicit

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/util"
)

// Name is the strategy name
const Name = "explicit"

// Generator implements synth.Generator with explicit node construction
type Generator struct{}

// NewGenerator creates a new explicit generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Name returns "explicit"
func (g *Generator) Name() string {
	return Name
}

// Generate builds the struct declaration, the two Introspector methods and
// the interface binding for s.
func (g *Generator) Generate(s *model.Struct) (synth.Fragment, error) {
	structName, err := util.ExportName(s.Name)
	if err != nil {
		return nil, synth.StructError(errors.ErrInvalidIdentifier, s, err)
	}

	fields := make([]*ast.Field, 0, len(s.Attributes))
	for i := range s.Attributes {
		field, err := buildField(s, &s.Attributes[i])
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	// Counts are computed once here and embedded as literals
	numberOfAttributes := s.AttributeCount()
	numberOfOptionalFields := s.OptionalCount()

	return &synth.DeclFragment{
		Decls: []ast.Decl{
			buildStruct(structName, fields),
			buildCountMethod(structName, synth.MethodNumberOfAttributes, numberOfAttributes),
			buildCountMethod(structName, synth.MethodNumberOfOptionalFields, numberOfOptionalFields),
			buildBinding(structName),
		},
	}, nil
}

// buildField creates `Name T` or `Name optional.Option[T]`
func buildField(s *model.Struct, a *model.Attribute) (*ast.Field, error) {
	fieldName, err := util.ExportName(a.Name)
	if err != nil {
		return nil, synth.AttributeError(errors.ErrInvalidIdentifier, s, a, err)
	}

	baseType, err := util.ParseType(a.Type)
	if err != nil {
		return nil, synth.AttributeError(errors.ErrParseFailure, s, a, err)
	}

	fieldType := baseType
	if a.Optional {
		fieldType = buildOptionalType(baseType)
	}

	return &ast.Field{
		Doc:     nil,
		Names:   []*ast.Ident{{Name: fieldName}},
		Type:    fieldType,
		Tag:     nil,
		Comment: nil,
	}, nil
}

// buildOptionalType creates the type `optional.Option[base]`
func buildOptionalType(base ast.Expr) ast.Expr {
	return &ast.IndexExpr{
		X: &ast.SelectorExpr{
			X:   &ast.Ident{Name: synth.OptionalPackage},
			Sel: &ast.Ident{Name: synth.OptionType},
		},
		Lbrack: token.NoPos,
		Index:  base,
		Rbrack: token.NoPos,
	}
}

// buildStruct creates `type Name struct { fields }`
func buildStruct(name string, fields []*ast.Field) *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{
			&ast.TypeSpec{
				Name:       &ast.Ident{Name: name},
				TypeParams: nil,
				Assign:     token.NoPos,
				Type: &ast.StructType{
					Fields: &ast.FieldList{
						List: fields,
					},
				},
			},
		},
	}
}

// buildCountMethod creates `func (Name) method() int { return value }`
func buildCountMethod(structName, method string, value int) *ast.FuncDecl {
	return &ast.FuncDecl{
		Recv: &ast.FieldList{
			List: []*ast.Field{
				{Type: &ast.Ident{Name: structName}},
			},
		},
		Name: &ast.Ident{Name: method},
		Type: &ast.FuncType{
			TypeParams: nil,
			Params:     &ast.FieldList{},
			Results: &ast.FieldList{
				List: []*ast.Field{
					{Type: &ast.Ident{Name: "int"}},
				},
			},
		},
		Body: &ast.BlockStmt{
			List: []ast.Stmt{
				&ast.ReturnStmt{
					Results: []ast.Expr{
						&ast.BasicLit{
							Kind:  token.INT,
							Value: strconv.Itoa(value),
						},
					},
				},
			},
		},
	}
}

// buildBinding creates `var _ model.Introspector = Name{}`
func buildBinding(structName string) *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names: []*ast.Ident{{Name: "_"}},
				Type: &ast.SelectorExpr{
					X:   &ast.Ident{Name: synth.ModelPackage},
					Sel: &ast.Ident{Name: synth.IntrospectorType},
				},
				Values: []ast.Expr{
					&ast.CompositeLit{
						Type: &ast.Ident{Name: structName},
					},
				},
			},
		},
	}
}
