package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllMatchesNames(t *testing.T) {
	gens := All()
	require.Len(t, gens, len(Names()))
	for i, gen := range gens {
		assert.Equal(t, Names()[i], gen.Name())
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"explicit", "explicit"},
		{"templated", "templated"},
		{"direct", "direct"},
		{"full", "explicit"},
		{"partial", "templated"},
		{"no-parsing", "direct"},
		{"noparse", "direct"},
		{" Explicit ", "explicit"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gen, err := Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, gen.Name())
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("handwritten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestSelect(t *testing.T) {
	gens, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, gens, 3)

	gens, err = Select([]string{"direct", "no-parsing", "full"})
	require.NoError(t, err)
	require.Len(t, gens, 2)
	assert.Equal(t, "direct", gens[0].Name())
	assert.Equal(t, "explicit", gens[1].Name())

	_, err = Select([]string{"direct", "bogus"})
	assert.Error(t, err)
}

func TestAliases(t *testing.T) {
	assert.Equal(t, []string{"full", "no-parsing", "noparse", "partial"}, Aliases())
}
