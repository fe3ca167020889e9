package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	"freqmine/internal/engine"
)

// FileConfig is the optional YAML run configuration. Flags set explicitly
// on the command line take precedence over file values.
type FileConfig struct {
	Inputs             []string `yaml:"inputs"`
	MinSupport         int      `yaml:"min_support"`
	MinSupportFraction float64  `yaml:"min_support_fraction"`
	ExecutionMode      string   `yaml:"execution_mode"`
	Workers            int      `yaml:"workers"`
	MaxIterations      int      `yaml:"max_iterations"`
	OutputDir          string   `yaml:"output_dir"`
	CleanPrevious      bool     `yaml:"clean_previous_outputs"`
	VerboseErrors      bool     `yaml:"verbose_errors"`
}

// LoadConfig reads and parses a YAML run configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErrorf("read config: %v", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configErrorf("parse config %s: %v", path, err)
	}
	return &cfg, nil
}

// Apply copies file values into the invocation for every option the caller
// did not set explicitly. set reports whether a flag name was given on the
// command line.
func (c *FileConfig) Apply(inv *Invocation, set func(name string) bool) error {
	if c == nil {
		return nil
	}
	if len(inv.Inputs) == 0 {
		inv.Inputs = c.Inputs
	}
	if !set("min-support") {
		inv.MinSupport = c.MinSupport
	}
	if !set("min-support-fraction") {
		inv.MinSupportFraction = c.MinSupportFraction
	}
	if !set("mode") && c.ExecutionMode != "" {
		mode, err := engine.ParseMode(c.ExecutionMode)
		if err != nil {
			return configErrorf("%v", err)
		}
		inv.ExecutionMode = mode
	}
	if !set("workers") {
		inv.Workers = c.Workers
	}
	if !set("max-iterations") && c.MaxIterations != 0 {
		inv.MaxIterations = c.MaxIterations
	}
	if !set("output-dir") && c.OutputDir != "" {
		inv.OutputDir = c.OutputDir
	}
	if !set("clean") {
		inv.CleanPrevious = c.CleanPrevious
	}
	if !set("verbose-errors") {
		inv.VerboseErrors = c.VerboseErrors
	}
	return nil
}
