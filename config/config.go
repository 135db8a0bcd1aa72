// Package config loads synbench settings from defaults, TOML files and
// SYNBENCH_* environment variables.
package config

// Config represents the synbench configuration
type Config struct {
	Workload WorkloadConfig `mapstructure:"workload" toml:"workload" yaml:"workload" json:"workload"`
	Bench    BenchConfig    `mapstructure:"bench" toml:"bench" yaml:"bench" json:"bench"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" yaml:"generate" json:"generate"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// WorkloadConfig configures the synthetic workload
type WorkloadConfig struct {
	Count int `mapstructure:"count" toml:"count" yaml:"count" json:"count"` // Number of structs (default: 1000)
}

// BenchConfig configures benchmark runs
type BenchConfig struct {
	Iterations int      `mapstructure:"iterations" toml:"iterations" yaml:"iterations" json:"iterations"` // Timed passes per strategy (default: 1)
	Warmup     int      `mapstructure:"warmup" toml:"warmup" yaml:"warmup" json:"warmup"`                 // Untimed passes before timing (default: 0)
	Strategies []string `mapstructure:"strategies" toml:"strategies" yaml:"strategies" json:"strategies"` // Empty = all strategies
}

// GenerateConfig configures code generation
type GenerateConfig struct {
	Strategy    string `mapstructure:"strategy" toml:"strategy" yaml:"strategy" json:"strategy"`             // default: explicit
	Package     string `mapstructure:"package" toml:"package" yaml:"package" json:"package"`                 // Package clause of generated files
	Parallelism int    `mapstructure:"parallelism" toml:"parallelism" yaml:"parallelism" json:"parallelism"` // 0 or 1 = sequential
}

// LogConfig configures logging
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"` // Structured JSON logs instead of console output
}
