package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/direct"
	"github.com/teranos/synbench/synth/explicit"
	"github.com/teranos/synbench/synth/registry"
	"github.com/teranos/synbench/synth/templated"
	"github.com/teranos/synbench/workload"
)

const myStructSource = `type MyStruct struct {
	Field1 string
	Field2 optional.Option[int32]
}

func (MyStruct) NumberOfAttributes() int { return 2 }

func (MyStruct) NumberOfOptionalFields() int { return 1 }

var _ model.Introspector = MyStruct{}
`

func myStruct() *model.Struct {
	return &model.Struct{
		Name: "MyStruct",
		Attributes: []model.Attribute{
			{Name: "field1", Type: "string"},
			{Name: "field2", Type: "int32", Optional: true},
		},
	}
}

func source(t *testing.T, gen synth.Generator, s *model.Struct) []byte {
	t.Helper()
	frag, err := gen.Generate(s)
	require.NoError(t, err)
	src, err := frag.Source()
	require.NoError(t, err)
	return src
}

// =============================================================================
// Inspect tests
// =============================================================================

func TestInspectMyStruct(t *testing.T) {
	shape, err := Inspect([]byte(myStructSource))
	require.NoError(t, err)

	expected := &Shape{
		Name: "MyStruct",
		Fields: []FieldShape{
			{Name: "Field1", Type: "string"},
			{Name: "Field2", Type: "int32", Optional: true},
		},
		NumberOfAttributes:     2,
		NumberOfOptionalFields: 1,
		Bound:                  true,
	}
	assert.Equal(t, expected, shape)
}

func TestInspectRejectsIncompleteFragments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no struct", "func (X) NumberOfAttributes() int { return 0 }\n"},
		{"missing method", "type X struct{}\n\nfunc (X) NumberOfAttributes() int { return 0 }\n"},
		{"non literal", "type X struct{}\n\nfunc (X) NumberOfAttributes() int { return n }\n\nfunc (X) NumberOfOptionalFields() int { return 0 }\n"},
		{"does not parse", "type X struct {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestInspectUnbound(t *testing.T) {
	src := "type X struct{}\n\nfunc (X) NumberOfAttributes() int { return 0 }\n\nfunc (X) NumberOfOptionalFields() int { return 0 }\n\nvar _ model.Introspector = Y{}\n"
	shape, err := Inspect([]byte(src))
	require.NoError(t, err)
	assert.False(t, shape.Bound)
}

// =============================================================================
// Equivalence tests
// =============================================================================

func TestEquivalentIgnoresLayout(t *testing.T) {
	for _, gen := range registry.All() {
		t.Run(gen.Name(), func(t *testing.T) {
			diff, err := Equivalent([]byte(myStructSource), source(t, gen, myStruct()))
			require.NoError(t, err)
			assert.Empty(t, diff)
		})
	}
}

func TestEquivalentDetectsDifferences(t *testing.T) {
	changed := []byte(`type MyStruct struct {
	Field1 string
	Field2 int32
}

func (MyStruct) NumberOfAttributes() int { return 2 }

func (MyStruct) NumberOfOptionalFields() int { return 1 }

var _ model.Introspector = MyStruct{}
`)
	diff, err := Equivalent([]byte(myStructSource), changed)
	require.NoError(t, err)
	assert.NotEmpty(t, diff)
}

func TestConforms(t *testing.T) {
	diff, err := Conforms(myStruct(), []byte(myStructSource))
	require.NoError(t, err)
	assert.Empty(t, diff)

	swapped := myStruct()
	swapped.Attributes[0], swapped.Attributes[1] = swapped.Attributes[1], swapped.Attributes[0]
	diff, err = Conforms(swapped, []byte(myStructSource))
	require.NoError(t, err)
	assert.NotEmpty(t, diff, "field order must be preserved")
}

// Every strategy produces equivalent, conforming output on the workload
func TestCrossStrategyEquivalenceOnWorkload(t *testing.T) {
	structs := workload.Generate(workload.DefaultCount)

	summary, err := Check(context.Background(), registry.All(), structs)
	require.NoError(t, err)

	assert.True(t, summary.OK(), "mismatches: %+v", summary.Mismatches)
	assert.Empty(t, summary.Failures)
	assert.Equal(t, workload.DefaultCount, summary.Agreed)
	assert.Equal(t, []string{"explicit", "templated", "direct"}, summary.Strategies)
}

func TestEdgeCasesAgree(t *testing.T) {
	structs := []model.Struct{
		{Name: "Empty"},
		{Name: "AllOptional", Attributes: []model.Attribute{
			{Name: "a", Type: "string", Optional: true},
			{Name: "b", Type: "int32", Optional: true},
			{Name: "c", Type: "bool", Optional: true},
		}},
		{Name: "Wide", Attributes: []model.Attribute{
			{Name: "f0", Type: "uint8"}, {Name: "f1", Type: "float64"},
			{Name: "f2", Type: "rune", Optional: true}, {Name: "f3", Type: "complex128"},
		}},
		{Name: "Tagged", Attributes: []model.Attribute{
			{Name: "a", Type: "struct{ A int `json:\"a\"` }"},
			{Name: "b", Type: "struct{ B string `yaml:\"b\"` }", Optional: true},
		}},
	}

	summary, err := Check(context.Background(), registry.All(), structs)
	require.NoError(t, err)
	assert.True(t, summary.OK(), "mismatches: %+v", summary.Mismatches)
	assert.Equal(t, len(structs), summary.Agreed)
	// direct rejects the struct types; the other two must agree on the tags
	assert.Equal(t, 1, summary.FailureCount(direct.Name))
	assert.Zero(t, summary.FailureCount(explicit.Name))
	assert.Zero(t, summary.FailureCount(templated.Name))
}

func TestStructTagsSurviveEveryParsingStrategy(t *testing.T) {
	s := &model.Struct{Name: "Tagged", Attributes: []model.Attribute{
		{Name: "a", Type: "struct{ A int `json:\"a\"` }"},
	}}
	for _, optional := range []bool{false, true} {
		s.Attributes[0].Optional = optional

		a, err := render(explicit.NewGenerator(), s)
		require.NoError(t, err)
		b, err := render(templated.NewGenerator(), s)
		require.NoError(t, err)

		diff, err := Equivalent(a, b)
		require.NoError(t, err)
		assert.Empty(t, diff)
		assert.Contains(t, string(b), "`json:\"a\"`")

		diff, err = Conforms(s, b)
		require.NoError(t, err)
		assert.Empty(t, diff)
	}
}

// A failing struct is reported and the remaining structs are still checked
func TestCheckIsolatesFailures(t *testing.T) {
	structs := workload.Generate(10)
	structs[3].Attributes = append(structs[3].Attributes, model.Attribute{Name: "bytes", Type: "[]byte"})
	structs[5].Attributes = append(structs[5].Attributes, model.Attribute{Name: "bad", Type: "1+2"})

	summary, err := Check(context.Background(), registry.All(), structs)
	require.NoError(t, err)
	assert.True(t, summary.OK(), "mismatches: %+v", summary.Mismatches)
	assert.Equal(t, 10, summary.Agreed)

	// []byte: only direct rejects it; 1+2: every strategy rejects it
	assert.Equal(t, 1, summary.FailureCount(explicit.Name))
	assert.Equal(t, 1, summary.FailureCount(templated.Name))
	assert.Equal(t, 2, summary.FailureCount(direct.Name))

	for _, f := range summary.Failures {
		switch f.Index {
		case 3:
			assert.Equal(t, direct.Name, f.Strategy)
			assert.Equal(t, "unsupported_type", f.Kind)
		case 5:
			if f.Strategy == direct.Name {
				assert.Equal(t, "unsupported_type", f.Kind)
			} else {
				assert.Equal(t, "parse_failure", f.Kind)
			}
		default:
			t.Errorf("unexpected failure at index %d", f.Index)
		}
	}
}

type brokenGenerator struct{}

func (brokenGenerator) Name() string { return "broken" }

// Generate drops the optional wrapping of every field
func (brokenGenerator) Generate(s *model.Struct) (synth.Fragment, error) {
	plain := *s
	plain.Attributes = make([]model.Attribute, len(s.Attributes))
	for i, a := range s.Attributes {
		a.Optional = false
		plain.Attributes[i] = a
	}
	return direct.NewGenerator().Generate(&plain)
}

func TestCheckDetectsWrongOutput(t *testing.T) {
	gens := []synth.Generator{explicit.NewGenerator(), brokenGenerator{}}

	summary, err := Check(context.Background(), gens, []model.Struct{*myStruct()})
	require.NoError(t, err)
	assert.False(t, summary.OK())
	assert.Equal(t, 0, summary.Agreed)
	require.Len(t, summary.Mismatches, 1)
	assert.Equal(t, "broken", summary.Mismatches[0].Strategy)
	assert.NotEmpty(t, summary.Mismatches[0].Diff)
}

func TestCheckCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Check(ctx, registry.All(), workload.Generate(5))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Agreed)
}

// Rendering then re-parsing preserves everything the model describes
func TestRoundTrip(t *testing.T) {
	for _, gen := range registry.All() {
		t.Run(gen.Name(), func(t *testing.T) {
			for _, s := range workload.Generate(100) {
				diff, err := Conforms(&s, source(t, gen, &s))
				require.NoError(t, err)
				assert.Empty(t, diff, s.Name)
			}
		})
	}
}
