package synth_test

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/direct"
	"github.com/teranos/synbench/synth/explicit"
	"github.com/teranos/synbench/synth/registry"
	"github.com/teranos/synbench/workload"
)

// =============================================================================
// Contract tests
// =============================================================================

func TestMethodNamesMatchIntrospector(t *testing.T) {
	iface := reflect.TypeOf((*model.Introspector)(nil)).Elem()
	require.Equal(t, 2, iface.NumMethod())

	for _, name := range []string{synth.MethodNumberOfAttributes, synth.MethodNumberOfOptionalFields} {
		m, ok := iface.MethodByName(name)
		require.True(t, ok, name)
		assert.Equal(t, 0, m.Type.NumIn())
		require.Equal(t, 1, m.Type.NumOut())
		assert.Equal(t, reflect.Int, m.Type.Out(0).Kind())
	}
}

func TestDeclFragmentSource(t *testing.T) {
	frag := &synth.DeclFragment{Decls: []ast.Decl{
		&ast.GenDecl{Tok: token.VAR, Specs: []ast.Spec{&ast.ValueSpec{
			Names: []*ast.Ident{ast.NewIdent("a")},
			Type:  ast.NewIdent("int"),
		}}},
		&ast.GenDecl{Tok: token.VAR, Specs: []ast.Spec{&ast.ValueSpec{
			Names: []*ast.Ident{ast.NewIdent("b")},
			Type:  ast.NewIdent("string"),
		}}},
	}}

	src, err := frag.Source()
	require.NoError(t, err)
	assert.Equal(t, "var a int\n\nvar b string\n", string(src))
}

func TestAttributeError(t *testing.T) {
	s := &model.Struct{Name: "S"}
	a := &model.Attribute{Name: "f", Type: "1+2"}

	err := synth.AttributeError(errors.ErrParseFailure, s, a, errors.New("boom"))
	assert.True(t, errors.IsParseFailure(err))
	assert.Contains(t, err.Error(), `struct S: attribute f: type "1+2": boom`)

	err = synth.AttributeError(errors.ErrUnsupportedType, s, a, nil)
	assert.True(t, errors.IsUnsupportedType(err))
	assert.False(t, errors.IsParseFailure(err))
}

// =============================================================================
// Cross-strategy tests
// =============================================================================

func TestGeneratorsAreDeterministic(t *testing.T) {
	structs := workload.Generate(50)
	for _, gen := range registry.All() {
		t.Run(gen.Name(), func(t *testing.T) {
			for i := range structs {
				first, err := gen.Generate(&structs[i])
				require.NoError(t, err)
				second, err := gen.Generate(&structs[i])
				require.NoError(t, err)

				a, err := first.Source()
				require.NoError(t, err)
				b, err := second.Source()
				require.NoError(t, err)
				assert.Equal(t, string(a), string(b))
			}
		})
	}
}

func TestGeneratorsAgreeOnMyStruct(t *testing.T) {
	s := &model.Struct{
		Name: "MyStruct",
		Attributes: []model.Attribute{
			{Name: "field1", Type: "string"},
			{Name: "field2", Type: "int32", Optional: true},
		},
	}

	var sources []string
	for _, gen := range registry.All() {
		frag, err := gen.Generate(s)
		require.NoError(t, err, gen.Name())
		src, err := frag.Source()
		require.NoError(t, err, gen.Name())
		sources = append(sources, string(src))
	}
	for _, src := range sources[1:] {
		assert.Equal(t, sources[0], src)
	}
}

// =============================================================================
// Batch tests
// =============================================================================

func batchInput() []model.Struct {
	structs := workload.Generate(20)
	// Index 7 carries a type the direct strategy cannot handle
	structs[7].Attributes = append(structs[7].Attributes, model.Attribute{Name: "extra", Type: "[]byte"})
	return structs
}

func TestGenerateAllIsolatesFailures(t *testing.T) {
	for _, parallelism := range []int{0, 1, 4} {
		outcomes := synth.GenerateAll(context.Background(), direct.NewGenerator(), batchInput(), synth.BatchOptions{Parallelism: parallelism})
		require.Len(t, outcomes, 20)

		for i, o := range outcomes {
			assert.Equal(t, i, o.Index)
			assert.Equal(t, "MyStruct"+strconv.Itoa(i), o.Struct.Name)
			if i == 7 {
				assert.Nil(t, o.Fragment)
				assert.True(t, errors.IsUnsupportedType(o.Err))
				continue
			}
			assert.NoError(t, o.Err)
			assert.NotNil(t, o.Fragment)
		}

		assert.Len(t, synth.Fragments(outcomes), 19)
		failures := synth.Failures(outcomes)
		require.Len(t, failures, 1)
		assert.Equal(t, 7, failures[0].Index)
	}
}

func TestGenerateAllParallelMatchesSequential(t *testing.T) {
	structs := workload.Generate(200)
	gen := direct.NewGenerator()

	seq := synth.GenerateAll(context.Background(), gen, structs, synth.BatchOptions{})
	par := synth.GenerateAll(context.Background(), gen, structs, synth.BatchOptions{Parallelism: 8})

	for i := range structs {
		a, err := seq[i].Fragment.Source()
		require.NoError(t, err)
		b, err := par[i].Fragment.Source()
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestGenerateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := synth.GenerateAll(ctx, direct.NewGenerator(), workload.Generate(3), synth.BatchOptions{})
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

// =============================================================================
// File rendering tests
// =============================================================================

func renderAll(t *testing.T, gen synth.Generator, structs []model.Struct) []byte {
	t.Helper()
	outcomes := synth.GenerateAll(context.Background(), gen, structs, synth.BatchOptions{})
	require.Empty(t, synth.Failures(outcomes))
	out, err := synth.RenderFile("generated", synth.Fragments(outcomes))
	require.NoError(t, err)
	return out
}

func TestRenderFileParses(t *testing.T) {
	for _, gen := range registry.All() {
		t.Run(gen.Name(), func(t *testing.T) {
			out := renderAll(t, gen, workload.Generate(25))

			file, err := parser.ParseFile(token.NewFileSet(), "", out, 0)
			require.NoError(t, err)
			assert.Equal(t, "generated", file.Name.Name)
			require.Len(t, file.Imports, 2)
			assert.Equal(t, `"github.com/teranos/synbench/model"`, file.Imports[0].Path.Value)
			assert.Equal(t, `"github.com/teranos/synbench/optional"`, file.Imports[1].Path.Value)
			// four declarations per struct plus the import block
			assert.Len(t, file.Decls, 25*4+1)
		})
	}
}

func TestRenderFileDropsUnusedImports(t *testing.T) {
	out := renderAll(t, direct.NewGenerator(), []model.Struct{
		{Name: "Plain", Attributes: []model.Attribute{{Name: "a", Type: "string"}}},
	})
	assert.Contains(t, string(out), `import "github.com/teranos/synbench/model"`)
	assert.NotContains(t, string(out), "synbench/optional")

	out, err := synth.RenderFile("empty", nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "package empty")
	assert.NotContains(t, string(out), "import")
}

func TestRenderFileSingleImportHasNoParens(t *testing.T) {
	out := renderAll(t, direct.NewGenerator(), []model.Struct{
		{Name: "Plain", Attributes: []model.Attribute{{Name: "a", Type: "string"}}},
		{Name: "Other", Attributes: []model.Attribute{{Name: "b", Type: "int"}}},
	})
	assert.NotContains(t, string(out), "import (")

	file, err := parser.ParseFile(token.NewFileSet(), "", out, 0)
	require.NoError(t, err)
	require.Len(t, file.Imports, 1)
	gen := file.Decls[0].(*ast.GenDecl)
	assert.False(t, gen.Lparen.IsValid())
}

func TestRenderFileImportsQualifiedTypes(t *testing.T) {
	out := renderAll(t, explicit.NewGenerator(), []model.Struct{
		{Name: "Event", Attributes: []model.Attribute{
			{Name: "when", Type: "time.Time"},
			{Name: "payload", Type: "json.RawMessage", Optional: true},
		}},
	})

	file, err := parser.ParseFile(token.NewFileSet(), "", out, 0)
	require.NoError(t, err)

	var paths []string
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)
		paths = append(paths, p)
	}
	assert.ElementsMatch(t, []string{
		"encoding/json",
		"time",
		"github.com/teranos/synbench/model",
		"github.com/teranos/synbench/optional",
	}, paths)
}

func TestRenderFileInvalidPackage(t *testing.T) {
	_, err := synth.RenderFile("not-a-package", nil)
	assert.Error(t, err)
}
