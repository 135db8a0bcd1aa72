package util

import (
	"unicode"
	"unicode/utf8"

	"github.com/teranos/synbench/model"
)

// ExportName converts a model name to an exported Go identifier by
// upper-casing its first letter ("field1" -> "Field1").
// Fails for names model.ValidateName rejects.
func ExportName(name string) (string, error) {
	if err := model.ValidateName(name); err != nil {
		return "", err
	}
	r, size := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return name, nil
	}
	return string(unicode.ToUpper(r)) + name[size:], nil
}
