// Package verify checks generated fragments independently of timing: it
// re-parses rendered declarations, extracts their shape and compares the
// output of different strategies.
package verify

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/util"
)

// FieldShape is one struct field as it appears in generated code
type FieldShape struct {
	Name     string
	Type     string // inner type when Optional
	Optional bool
}

// Shape is the observable content of one generated fragment
type Shape struct {
	Name                   string
	Fields                 []FieldShape
	NumberOfAttributes     int
	NumberOfOptionalFields int
	Bound                  bool // var _ model.Introspector = Name{} present
}

// ParseDecls parses rendered declarations (no package clause).
func ParseDecls(src []byte) ([]ast.Decl, error) {
	file := append([]byte("package p\n\n"), src...)
	f, err := parser.ParseFile(token.NewFileSet(), "", file, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrap(err, "generated source does not parse")
	}
	return f.Decls, nil
}

// Inspect re-parses rendered declarations and extracts their shape.
func Inspect(src []byte) (*Shape, error) {
	decls, err := ParseDecls(src)
	if err != nil {
		return nil, err
	}

	shape := &Shape{}
	counts := map[string]*int{
		synth.MethodNumberOfAttributes:     &shape.NumberOfAttributes,
		synth.MethodNumberOfOptionalFields: &shape.NumberOfOptionalFields,
	}
	found := map[string]bool{}
	bound := map[string]bool{}

	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					st, ok := sp.Type.(*ast.StructType)
					if !ok {
						continue
					}
					if shape.Name != "" {
						return nil, errors.Newf("more than one struct type: %s and %s", shape.Name, sp.Name.Name)
					}
					shape.Name = sp.Name.Name
					shape.Fields = fieldShapes(st)
				case *ast.ValueSpec:
					if name, ok := boundType(sp); ok {
						bound[name] = true
					}
				}
			}

		case *ast.FuncDecl:
			target, ok := counts[d.Name.Name]
			if !ok {
				continue
			}
			n, err := returnedInt(d)
			if err != nil {
				return nil, errors.Wrapf(err, "method %s", d.Name.Name)
			}
			*target = n
			found[d.Name.Name] = true
		}
	}

	if shape.Name == "" {
		return nil, errors.New("no struct type declared")
	}
	for method := range counts {
		if !found[method] {
			return nil, errors.Newf("method %s not declared", method)
		}
	}
	// The binding must name the declared struct
	shape.Bound = bound[shape.Name]
	return shape, nil
}

// Expect returns the shape generated code must have for s. Types are given
// in their printed form so "[]  byte" and "[]byte" compare equal.
func Expect(s *model.Struct) (*Shape, error) {
	name, err := util.ExportName(s.Name)
	if err != nil {
		return nil, err
	}

	shape := &Shape{
		Name:                   name,
		Fields:                 make([]FieldShape, len(s.Attributes)),
		NumberOfAttributes:     s.AttributeCount(),
		NumberOfOptionalFields: s.OptionalCount(),
		Bound:                  true,
	}
	for i, a := range s.Attributes {
		fieldName, err := util.ExportName(a.Name)
		if err != nil {
			return nil, err
		}
		typ := a.Type
		if parsed, err := util.ParseType(a.Type); err == nil {
			typ = typeString(parsed)
		}
		shape.Fields[i] = FieldShape{Name: fieldName, Type: typ, Optional: a.Optional}
	}
	return shape, nil
}

// typeString prints a type expression with gofmt layout. Unlike
// types.ExprString it keeps struct field tags. Positions are ignored so
// parsed and built nodes print alike.
func typeString(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), expr); err != nil {
		return types.ExprString(expr)
	}
	return buf.String()
}

func fieldShapes(st *ast.StructType) []FieldShape {
	var fields []FieldShape
	for _, f := range st.Fields.List {
		typ, optional := unwrapOptional(f.Type)
		for _, name := range f.Names {
			fields = append(fields, FieldShape{Name: name.Name, Type: typeString(typ), Optional: optional})
		}
	}
	return fields
}

// unwrapOptional strips one optional.Option[...] layer
func unwrapOptional(expr ast.Expr) (ast.Expr, bool) {
	index, ok := expr.(*ast.IndexExpr)
	if !ok {
		return expr, false
	}
	if !isSelector(index.X, synth.OptionalPackage, synth.OptionType) {
		return expr, false
	}
	return index.Index, true
}

// boundType recognizes `var _ model.Introspector = T{}` and returns T
func boundType(spec *ast.ValueSpec) (string, bool) {
	if len(spec.Names) != 1 || spec.Names[0].Name != "_" || len(spec.Values) != 1 {
		return "", false
	}
	if !isSelector(spec.Type, synth.ModelPackage, synth.IntrospectorType) {
		return "", false
	}
	lit, ok := spec.Values[0].(*ast.CompositeLit)
	if !ok || len(lit.Elts) != 0 {
		return "", false
	}
	id, ok := lit.Type.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func isSelector(expr ast.Expr, pkg, name string) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && x.Name == pkg && sel.Sel.Name == name
}

// returnedInt reads the literal of a single-statement `return N` body
func returnedInt(fn *ast.FuncDecl) (int, error) {
	if fn.Body == nil || len(fn.Body.List) != 1 {
		return 0, errors.New("body is not a single return")
	}
	ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return 0, errors.New("body is not a single return")
	}
	lit, ok := ret.Results[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return 0, errors.New("return value is not an integer literal")
	}
	return strconv.Atoi(lit.Value)
}
