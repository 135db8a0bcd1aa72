// Package model holds the data-model description that synbench generates
// code from: named structs made of named, typed, optionally-absent
// attributes.
package model

import (
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/synbench/errors"
)

// Attribute describes one field of a generated struct.
type Attribute struct {
	// Name of the attribute; exported (first letter upper-cased) in the output
	Name string `json:"name" toml:"name" yaml:"name"`
	// Type is the Go type expression of the field, e.g. "string" or "[]int32"
	Type string `json:"type" toml:"type" yaml:"type"`
	// Optional wraps the field type in optional.Option
	Optional bool `json:"optional,omitempty" toml:"optional,omitempty" yaml:"optional,omitempty"`
}

// Struct describes one generated struct. Attribute order is the field order
// of the generated code.
type Struct struct {
	Name       string      `json:"name" toml:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes" toml:"attributes" yaml:"attributes"`
}

// AttributeCount returns the number of attributes in this struct.
func (s *Struct) AttributeCount() int {
	return len(s.Attributes)
}

// OptionalCount returns the number of optional attributes in this struct.
func (s *Struct) OptionalCount() int {
	n := 0
	for _, a := range s.Attributes {
		if a.Optional {
			n++
		}
	}
	return n
}

// Introspector is implemented by every generated struct. The values are
// fixed at generation time.
type Introspector interface {
	// NumberOfAttributes returns the number of fields of the struct
	NumberOfAttributes() int
	// NumberOfOptionalFields returns the number of optional fields of the struct
	NumberOfOptionalFields() int
}

// Validate checks that the struct and attribute names can become exported
// Go identifiers. Type expressions are left to the generators.
func (s *Struct) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return errors.Wrap(err, "struct name")
	}
	for i, a := range s.Attributes {
		if err := ValidateName(a.Name); err != nil {
			return errors.Wrapf(err, "struct %s attribute %d", s.Name, i)
		}
	}
	return nil
}

// ValidateName checks that name is a Go identifier, not a keyword, and
// starts with a letter.
func ValidateName(name string) error {
	if !token.IsIdentifier(name) {
		return errors.Mark(errors.Newf("%q is not a Go identifier", name), errors.ErrInvalidIdentifier)
	}
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(r) || !unicode.IsUpper(unicode.ToUpper(r)) {
		return errors.Mark(errors.Newf("%q must start with a letter that has an upper case form", name), errors.ErrInvalidIdentifier)
	}
	return nil
}
