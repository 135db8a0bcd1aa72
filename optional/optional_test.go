package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSome(t *testing.T) {
	o := Some(int32(7))

	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, int32(7), v)
	assert.True(t, o.IsSome())
	assert.Equal(t, int32(7), o.OrElse(1))
}

func TestNone(t *testing.T) {
	o := None[string]()

	v, ok := o.Get()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.False(t, o.IsSome())
	assert.Equal(t, "fallback", o.OrElse("fallback"))
}

func TestZeroValueIsNone(t *testing.T) {
	var o Option[string]
	assert.Equal(t, None[string](), o)
}
