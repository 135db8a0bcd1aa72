// Package registry maps strategy names to generators.
package registry

import (
	"sort"
	"strings"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/direct"
	"github.com/teranos/synbench/synth/explicit"
	"github.com/teranos/synbench/synth/templated"
)

// aliases accepts the descriptive names of the strategies
var aliases = map[string]string{
	"full":       explicit.Name,
	"partial":    templated.Name,
	"no-parsing": direct.Name,
	"noparse":    direct.Name,
}

// Names returns the canonical strategy names in benchmark order.
func Names() []string {
	return []string{explicit.Name, templated.Name, direct.Name}
}

// Aliases returns the accepted alternative names, sorted.
func Aliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns one generator per strategy, in benchmark order.
func All() []synth.Generator {
	return []synth.Generator{
		explicit.NewGenerator(),
		templated.NewGenerator(),
		direct.NewGenerator(),
	}
}

// Canonical resolves a strategy name or alias, case-insensitively.
func Canonical(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		return target, nil
	}
	for _, n := range Names() {
		if n == key {
			return n, nil
		}
	}
	return "", errors.WithHintf(errors.Newf("unknown strategy %q", name),
		"valid strategies: %s", strings.Join(Names(), ", "))
}

// Lookup returns a new generator for name.
func Lookup(name string) (synth.Generator, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case explicit.Name:
		return explicit.NewGenerator(), nil
	case templated.Name:
		return templated.NewGenerator(), nil
	default:
		return direct.NewGenerator(), nil
	}
}

// Select resolves names into generators, preserving order and dropping
// duplicates. An empty list selects every strategy.
func Select(names []string) ([]synth.Generator, error) {
	if len(names) == 0 {
		return All(), nil
	}

	seen := make(map[string]bool, len(names))
	var gens []synth.Generator
	for _, name := range names {
		canonical, err := Canonical(name)
		if err != nil {
			return nil, err
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		gen, err := Lookup(canonical)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
	}
	return gens, nil
}
