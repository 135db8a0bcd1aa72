package synth

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"sort"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
)

// DefaultPackage is the package clause used when none is configured
const DefaultPackage = "generated"

// RenderFile assembles fragments into one formatted Go source file in
// package pkg. Both the optional and model imports are declared up front
// and whichever is unused gets dropped. Package qualifiers in attribute
// types (time.Time, json.RawMessage) are resolved with goimports; a
// qualifier no package can be found for is left in place.
func RenderFile(pkg string, frags []Fragment) ([]byte, error) {
	if err := model.ValidateName(pkg); err != nil {
		return nil, errors.Wrap(err, "package name")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by synbench. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	fmt.Fprintf(&buf, "import (\n\t%s\n\t%s\n)\n", strconv.Quote(ModelPath), strconv.Quote(OptionalPath))

	for i, frag := range frags {
		src, err := frag.Source()
		if err != nil {
			return nil, errors.Wrapf(err, "fragment %d", i)
		}
		buf.WriteByte('\n')
		buf.Write(src)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(err, "generated file does not parse")
	}

	for _, imp := range []string{ModelPath, OptionalPath} {
		if !astutil.UsesImport(file, imp) {
			astutil.DeleteImport(fset, file, imp)
		}
	}
	collapseSingleImports(file)

	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		return nil, errors.Wrap(err, "failed to format generated file")
	}

	if len(missingQualifiers(file)) == 0 {
		return out.Bytes(), nil
	}
	fixed, err := imports.Process("", out.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve imports")
	}
	return fixed, nil
}

// collapseSingleImports drops the parentheses of import declarations left
// with a single spec, as gofmt would print a hand-written one.
func collapseSingleImports(file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT || len(gen.Specs) != 1 {
			continue
		}
		gen.Lparen = token.NoPos
		gen.Rparen = token.NoPos
	}
}

// missingQualifiers lists the package names used as selector qualifiers
// that neither an import nor a declaration in the file provides.
func missingQualifiers(file *ast.File) []string {
	imported := make(map[string]bool)
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		imported[name] = true
	}

	missing := make(map[string]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && id.Obj == nil && !imported[id.Name] {
			missing[id.Name] = true
		}
		return true
	})

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
