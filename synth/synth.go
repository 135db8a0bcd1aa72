// Package synth generates, from a model.Struct, the Go declarations of a
// struct type with one exported field per attribute plus an implementation
// of model.Introspector returning the attribute counts as literals.
//
// # Architecture
//
// The package defines the contract; each construction technique lives in its
// own subpackage and implements Generator:
//
//   - explicit/  builds every go/ast node by hand, parsing leaf types
//   - templated/ parses leaf types and splices them into a jen template
//   - direct/    never parses; maps primitive type names to pre-built nodes
//
// All generators produce equivalent declarations for the same input. Output
// for one struct:
//
//	type MyStruct struct {
//		Field1 string
//		Field2 optional.Option[int32]
//	}
//
//	func (MyStruct) NumberOfAttributes() int {
//		return 2
//	}
//
//	func (MyStruct) NumberOfOptionalFields() int {
//		return 1
//	}
//
//	var _ model.Introspector = MyStruct{}
//
// # Failures
//
// A generator either returns a complete fragment or an error marked with
// errors.ErrParseFailure, errors.ErrUnsupportedType or
// errors.ErrInvalidIdentifier. It never returns partial output.
package synth

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/token"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
)

// Names referenced by generated code
const (
	OptionalPath    = "github.com/teranos/synbench/optional"
	OptionalPackage = "optional"
	OptionType      = "Option"

	ModelPath        = "github.com/teranos/synbench/model"
	ModelPackage     = "model"
	IntrospectorType = "Introspector"

	MethodNumberOfAttributes     = "NumberOfAttributes"
	MethodNumberOfOptionalFields = "NumberOfOptionalFields"
)

// Generator turns one struct description into Go declarations.
// Implementations must not mutate the input and must be safe to call
// concurrently on different structs.
type Generator interface {
	// Name returns the strategy name (e.g., "explicit", "templated")
	Name() string

	// Generate builds the fragment for s, or fails without partial output
	Generate(s *model.Struct) (Fragment, error)
}

// Fragment is the in-memory syntax produced for one struct.
type Fragment interface {
	// Source renders the fragment as gofmt-formatted declarations without a
	// package clause.
	Source() ([]byte, error)
}

// DeclFragment is a fragment held as go/ast declarations.
type DeclFragment struct {
	Decls []ast.Decl
}

// Source prints each declaration, separated by a blank line.
func (f *DeclFragment) Source() ([]byte, error) {
	var buf bytes.Buffer
	fset := token.NewFileSet()
	for i, decl := range f.Decls {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		if err := format.Node(&buf, fset, decl); err != nil {
			return nil, errors.Wrapf(err, "failed to print declaration %d", i)
		}
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// AttributeError builds the failure for one attribute, marked with kind.
// cause may be nil.
func AttributeError(kind error, s *model.Struct, a *model.Attribute, cause error) error {
	var err error
	if cause != nil {
		err = errors.Wrapf(cause, "struct %s: attribute %s: type %q", s.Name, a.Name, a.Type)
	} else {
		err = errors.Newf("struct %s: attribute %s: type %q", s.Name, a.Name, a.Type)
	}
	return errors.Mark(err, kind)
}

// StructError builds a failure that concerns the struct itself (its name).
func StructError(kind error, s *model.Struct, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "struct %s", s.Name), kind)
}
