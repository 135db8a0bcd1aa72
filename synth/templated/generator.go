// Package templated implements synth.Generator by parsing only each leaf
// type expression and splicing the parsed node into a fixed jen template for
// the struct, its two Introspector methods and the interface binding.
package templated

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/token"

	"github.com/dave/jennifer/jen"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/util"
)

// Name is the strategy name
const Name = "templated"

// Generator implements synth.Generator with a jen template
type Generator struct{}

// NewGenerator creates a new templated generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Name returns "templated"
func (g *Generator) Name() string {
	return Name
}

// Fragment is the jen statement produced for one struct
type Fragment struct {
	stmt *jen.Statement
}

// Statement exposes the underlying jen statement, e.g. to add it to a jen.File
func (f *Fragment) Statement() *jen.Statement {
	return f.stmt
}

// Source renders the statement; jen runs go/format on the result.
func (f *Fragment) Source() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.stmt.Render(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render template")
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n'), nil
}

// Generate parses each attribute type, splices it into the template and
// returns the resulting fragment.
func (g *Generator) Generate(s *model.Struct) (synth.Fragment, error) {
	structName, err := util.ExportName(s.Name)
	if err != nil {
		return nil, synth.StructError(errors.ErrInvalidIdentifier, s, err)
	}

	fields := make([]jen.Code, 0, len(s.Attributes))
	for i := range s.Attributes {
		a := &s.Attributes[i]

		fieldName, err := util.ExportName(a.Name)
		if err != nil {
			return nil, synth.AttributeError(errors.ErrInvalidIdentifier, s, a, err)
		}

		parsed, err := util.ParseType(a.Type)
		if err != nil {
			return nil, synth.AttributeError(errors.ErrParseFailure, s, a, err)
		}

		typ, err := splice(parsed)
		if err != nil {
			return nil, synth.AttributeError(errors.ErrParseFailure, s, a, err)
		}
		if a.Optional {
			typ = jen.Qual(synth.OptionalPath, synth.OptionType).Types(typ)
		}
		fields = append(fields, jen.Id(fieldName).Add(typ))
	}

	return &Fragment{stmt: template(structName, fields, s.AttributeCount(), s.OptionalCount())}, nil
}

// template is the fixed shape of every fragment:
//
//	type <name> struct { <fields> }
//	func (<name>) NumberOfAttributes() int { return <attributes> }
//	func (<name>) NumberOfOptionalFields() int { return <optional> }
//	var _ model.Introspector = <name>{}
func template(name string, fields []jen.Code, attributes, optional int) *jen.Statement {
	return jen.Type().Id(name).Struct(fields...).
		Line().Line().
		Add(countMethod(name, synth.MethodNumberOfAttributes, attributes)).
		Line().Line().
		Add(countMethod(name, synth.MethodNumberOfOptionalFields, optional)).
		Line().Line().
		Var().Id("_").Qual(synth.ModelPath, synth.IntrospectorType).Op("=").Id(name).Values()
}

func countMethod(name, method string, n int) *jen.Statement {
	return jen.Func().Params(jen.Id(name)).Id(method).Params().Int().Block(
		jen.Return(jen.Lit(n)),
	)
}

// splice converts a parsed type expression into jen code. Forms without a
// dedicated jen builder (struct, interface, func and chan types) are printed
// with go/format and emitted verbatim, tags included.
func splice(expr ast.Expr) (*jen.Statement, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name), nil

	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return jen.Id(x.Name).Dot(t.Sel.Name), nil
		}

	case *ast.StarExpr:
		inner, err := splice(t.X)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(inner), nil

	case *ast.ParenExpr:
		inner, err := splice(t.X)
		if err != nil {
			return nil, err
		}
		return jen.Parens(inner), nil

	case *ast.ArrayType:
		elt, err := splice(t.Elt)
		if err != nil {
			return nil, err
		}
		if t.Len == nil {
			return jen.Index().Add(elt), nil
		}
		length, err := printNode(t.Len)
		if err != nil {
			return nil, err
		}
		return jen.Index(jen.Op(length)).Add(elt), nil

	case *ast.MapType:
		key, err := splice(t.Key)
		if err != nil {
			return nil, err
		}
		value, err := splice(t.Value)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(value), nil

	case *ast.IndexExpr:
		base, err := splice(t.X)
		if err != nil {
			return nil, err
		}
		arg, err := splice(t.Index)
		if err != nil {
			return nil, err
		}
		return base.Types(arg), nil

	case *ast.IndexListExpr:
		base, err := splice(t.X)
		if err != nil {
			return nil, err
		}
		args := make([]jen.Code, len(t.Indices))
		for i, index := range t.Indices {
			if args[i], err = splice(index); err != nil {
				return nil, err
			}
		}
		return base.Types(args...), nil
	}

	text, err := printNode(expr)
	if err != nil {
		return nil, err
	}
	return jen.Op(text), nil
}

// printNode prints an expression the way gofmt would
func printNode(node ast.Expr) (string, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), node); err != nil {
		return "", errors.Wrap(err, "failed to print type expression")
	}
	return buf.String(), nil
}
