// Package runconfig loads the CLI driver's configuration, kept as a plain
// Go struct unmarshaled from YAML rather than the algebraic core parsing
// any file itself -- the core neither reads nor writes files.
package runconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig controls a single run of cmd/starkcore: how large a codeword to
// build and commit, and where to write the resulting proof bundle.
type RunConfig struct {
	// LogLevel is a zap level name: "debug", "info", "warn", "error".
	LogLevel string `yaml:"logLevel"`

	// CodewordLength is the number of field elements evaluated to form the
	// Merkle-committed codeword. Must be a power of two.
	CodewordLength int `yaml:"codewordLength"`

	// QueryIndices names the leaf indices the driver requests a compressed
	// multi-proof for.
	QueryIndices []int `yaml:"queryIndices"`

	// OutputPath is where the CBOR-encoded ProofBundle is written.
	OutputPath string `yaml:"outputPath"`
}

// Default returns the configuration used when no config file is given.
func Default() RunConfig {
	return RunConfig{
		LogLevel:       "info",
		CodewordLength: 16,
		QueryIndices:   []int{0, 1},
		OutputPath:     "proof-bundle.cbor",
	}
}

// Load reads and unmarshals a YAML config file at path.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("runconfig: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("runconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}
