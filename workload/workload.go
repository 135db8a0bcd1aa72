// Package workload produces the deterministic synthetic structs the
// benchmark runs on. Nothing here reads an external randomness source: the
// shape of struct i depends only on i.
package workload

import (
	"strconv"

	"github.com/teranos/synbench/model"
)

// DefaultCount is the workload size used by the benchmarks and the CLI.
const DefaultCount = 1000

// MaxFields bounds the per-struct attribute count (1..MaxFields).
const MaxFields = 10

// Primitive type expressions alternated by field index.
const (
	EvenFieldType = "string"
	OddFieldType  = "int32"
)

// Mix is one splitmix64 step.
func Mix(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Diffuse is one xorshift64 step.
func Diffuse(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	return x
}

// FieldCount returns the number of attributes of struct i.
func FieldCount(i int) int {
	return int(Diffuse(Mix(Mix(uint64(i))))%MaxFields + 1)
}

// Generate returns count structs named MyStruct0..MyStruct<count-1>.
// Two calls with the same count return identical structs.
func Generate(count int) []model.Struct {
	if count <= 0 {
		return []model.Struct{}
	}

	structs := make([]model.Struct, 0, count)
	for i := 0; i < count; i++ {
		structs = append(structs, Struct(i))
	}
	return structs
}

// Struct returns the i-th workload struct.
func Struct(i int) model.Struct {
	n := FieldCount(i)
	attributes := make([]model.Attribute, 0, n)
	for j := 0; j < n; j++ {
		typ := EvenFieldType
		if j%2 != 0 {
			typ = OddFieldType
		}
		attributes = append(attributes, model.Attribute{
			Name:     "field" + strconv.Itoa(j),
			Type:     typ,
			Optional: j%3 == 0,
		})
	}
	return model.Struct{
		Name:       "MyStruct" + strconv.Itoa(i),
		Attributes: attributes,
	}
}
