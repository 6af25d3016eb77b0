// Package config loads the optional .pkgws.yaml tool configuration from the
// workspace root. Absent file and absent fields fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// FileName is the tool configuration file looked up in the workspace root.
const FileName = ".pkgws.yaml"

// Config is the tool configuration.
type Config struct {
	// PackageManager is the binary name of the external package manager.
	PackageManager string `yaml:"package_manager,omitempty"`
	// Jobs bounds per-project parallelism for graph-wide operations.
	Jobs  int   `yaml:"jobs,omitempty"`
	Build Build `yaml:"build,omitempty"`
}

// Build holds workspace-wide build defaults.
type Build struct {
	GenerateSourcemap bool `yaml:"generate_sourcemap,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{PackageManager: "yarn", Jobs: 4}
}

// Load reads .pkgws.yaml from root, applies defaults, and validates the
// result. A missing file yields the defaults.
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName)) //nolint:gosec // path is the workspace config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses .pkgws.yaml content on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PackageManager, validation.Required),
		validation.Field(&c.Jobs, validation.Required, validation.Min(1)),
	)
}
