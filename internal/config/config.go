package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MixedTypePolicy decides how a field holding both strings and numbers
// across the objects of one array takes part in the composite sort key.
type MixedTypePolicy string

const (
	// MixedTypeExclude drops the field from the sort key.
	MixedTypeExclude MixedTypePolicy = "exclude"
	// MixedTypeOrder keeps the field and orders every number before every string.
	MixedTypeOrder MixedTypePolicy = "type_order"
)

// DefaultIndent is the indent width of the pretty-printed output.
const DefaultIndent = 4

// Config represents the complete configuration for jsonorder
type Config struct {
	Formatting FormattingConfig `yaml:"formatting"`
	Sorting    SortingConfig    `yaml:"sorting"`
	Dev        DevConfig        `yaml:"dev"`
}

// FormattingConfig controls how the normalized document is rendered
type FormattingConfig struct {
	Indent       int  `yaml:"indent"`
	EscapeHTML   bool `yaml:"escape_html"`
	FinalNewline bool `yaml:"final_newline"`
}

// SortingConfig controls array ordering
type SortingConfig struct {
	MixedTypeFields MixedTypePolicy `yaml:"mixed_type_fields"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Formatting: FormattingConfig{
			Indent:       DefaultIndent,
			EscapeHTML:   false,
			FinalNewline: false,
		},
		Sorting: SortingConfig{
			MixedTypeFields: MixedTypeExclude,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks option values that YAML decoding alone cannot.
func (c *Config) Validate() error {
	if c.Formatting.Indent < 0 || c.Formatting.Indent > 16 {
		return fmt.Errorf("invalid indent %d: must be between 0 and 16", c.Formatting.Indent)
	}
	switch c.Sorting.MixedTypeFields {
	case MixedTypeExclude, MixedTypeOrder:
	default:
		return fmt.Errorf("invalid mixed_type_fields policy '%s': want '%s' or '%s'",
			c.Sorting.MixedTypeFields, MixedTypeExclude, MixedTypeOrder)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonorder.yml", ".jsonorder.yaml", "jsonorder.yml", "jsonorder.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Overrides holds values given on the command line. Nil fields were not set.
type Overrides struct {
	Indent *int
	Debug  bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides.Indent != nil {
		cfg.Formatting.Indent = *overrides.Indent
	}
	// --debug can only switch debugging on
	if overrides.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
