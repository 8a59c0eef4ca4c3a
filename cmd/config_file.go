package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/datacenter-sim/dcsim/sim"
)

// loadConfigFile reads experiment parameters from a YAML file. Keys omitted
// from the file keep their sim.DefaultConfig values; an empty file yields the
// defaults. Unknown keys are rejected so that typos surface as errors.
// The result is not validated here; resolveConfig validates after flags apply.
func loadConfigFile(path string) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := sim.DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return sim.Config{}, fmt.Errorf("%w: parsing %s: %v", sim.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}
