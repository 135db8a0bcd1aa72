package config

import (
	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth/registry"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errors.Mark(err, errors.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validate() error {
	// Zero structs is a valid (empty) workload
	if c.Workload.Count < 0 {
		return errors.Newf("workload.count must be >= 0, got %d", c.Workload.Count)
	}

	if c.Bench.Iterations < 1 {
		return errors.Newf("bench.iterations must be >= 1, got %d", c.Bench.Iterations)
	}
	if c.Bench.Warmup < 0 {
		return errors.Newf("bench.warmup must be >= 0, got %d", c.Bench.Warmup)
	}
	for _, name := range c.Bench.Strategies {
		if _, err := registry.Canonical(name); err != nil {
			return errors.Wrap(err, "bench.strategies")
		}
	}

	if _, err := registry.Canonical(c.Generate.Strategy); err != nil {
		return errors.Wrap(err, "generate.strategy")
	}
	if err := model.ValidateName(c.Generate.Package); err != nil {
		return errors.Wrap(err, "generate.package")
	}
	if c.Generate.Parallelism < 0 {
		return errors.Newf("generate.parallelism must be >= 0, got %d", c.Generate.Parallelism)
	}

	return nil
}
