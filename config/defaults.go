package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/explicit"
	"github.com/teranos/synbench/workload"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workload.count", workload.DefaultCount)

	v.SetDefault("bench.iterations", 1)
	v.SetDefault("bench.warmup", 0)
	v.SetDefault("bench.strategies", []string{}) // all strategies

	v.SetDefault("generate.strategy", explicit.Name)
	v.SetDefault("generate.package", synth.DefaultPackage)
	v.SetDefault("generate.parallelism", 1)

	v.SetDefault("log.json", false)
}
