package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/sufx/internal/suffix"
)

// Config is the parsed sufx.yaml.
type Config struct {
	// Backend selects the table patching strategy for suffix registration.
	// Defaults to table-patch.
	Backend string `yaml:"backend,omitempty"`

	// Packs lists the bundled suffix packs to enable at startup.
	Packs []string `yaml:"packs,omitempty"`
}

// Default returns the configuration used when no sufx.yaml exists.
func Default() *Config {
	return &Config{Backend: suffix.BackendTablePatch}
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses sufx.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for sufx.yaml starting from dir and walking up to
// parent directories. Returns the path and nil error if found, or empty
// string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load resolves the effective configuration for dir: the nearest sufx.yaml
// if any, otherwise defaults, with the SUFX_BACKEND environment variable
// taking precedence over the file.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if env := os.Getenv(EnvBackend); env != "" {
		cfg.Backend = env
		if err := cfg.validate(EnvBackend); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Backend == "" {
		c.Backend = suffix.BackendTablePatch
	}
}

func (c *Config) validate(source string) error {
	if _, err := suffix.ForName(c.Backend); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return nil
}
