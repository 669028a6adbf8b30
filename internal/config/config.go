package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mcncl/semjson/internal/errors"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatPatch   = "patch"
	FormatSummary = "summary"
)

// Formats lists the accepted output formats
var Formats = []string{FormatText, FormatJSON, FormatPatch, FormatSummary}

// MaxIndent bounds output.indent
const MaxIndent = 8

// Config represents the complete configuration for semjson
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Compare CompareConfig `yaml:"compare"`
	Patch   PatchConfig   `yaml:"patch"`
	Log     LogConfig     `yaml:"log"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format       string `yaml:"format"`
	Color        bool   `yaml:"color"`
	CollapseSame bool   `yaml:"collapse_same"`
	MaxDepth     int    `yaml:"max_depth"` // collapse containers below this level, 0 disables
	Indent       int    `yaml:"indent"`
}

// CompareConfig controls the comparison itself
type CompareConfig struct {
	MaxDepth int  `yaml:"max_depth"` // reject inputs nested deeper, 0 disables
	Lazy     bool `yaml:"lazy"`
}

// PatchConfig controls patch generation
type PatchConfig struct {
	Factorize  bool `yaml:"factorize"`
	Invertible bool `yaml:"invertible"`
	Verify     bool `yaml:"verify"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:       FormatText,
			Color:        false,
			CollapseSame: false,
			MaxDepth:     0,
			Indent:       2,
		},
		Compare: CompareConfig{
			MaxDepth: 1000,
			Lazy:     true,
		},
		Patch: PatchConfig{
			Factorize:  false,
			Invertible: false,
			Verify:     true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is in range
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Output.Format) {
		return errors.NewConfigError(fmt.Sprintf("invalid output format %q", c.Output.Format), errors.ErrUnknownFormat)
	}
	if c.Output.Indent < 0 || c.Output.Indent > MaxIndent {
		return errors.NewConfigError(fmt.Sprintf("output.indent must be between 0 and %d, got %d", MaxIndent, c.Output.Indent), nil)
	}
	if c.Output.MaxDepth < 0 {
		return errors.NewConfigError(fmt.Sprintf("output.max_depth must not be negative, got %d", c.Output.MaxDepth), nil)
	}
	if c.Compare.MaxDepth < 0 {
		return errors.NewConfigError(fmt.Sprintf("compare.max_depth must not be negative, got %d", c.Compare.MaxDepth), nil)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown log level %q", c.Log.Level), nil)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown log format %q", c.Log.Format), nil)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".semjson.yml", ".semjson.yaml", "semjson.yml", "semjson.yaml"}

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

// Overrides holds the command-line flags that were set explicitly. Nil fields
// and false booleans leave the configured value untouched.
type Overrides struct {
	Format          *string
	Color           bool
	CollapseSame    bool
	OutputMaxDepth  *int
	CompareMaxDepth *int
	Debug           bool
}

// Apply copies explicitly set overrides into c
func (c *Config) Apply(o Overrides) {
	if o.Format != nil {
		c.Output.Format = *o.Format
	}
	if o.Color {
		c.Output.Color = true
	}
	if o.CollapseSame {
		c.Output.CollapseSame = true
	}
	if o.OutputMaxDepth != nil {
		c.Output.MaxDepth = *o.OutputMaxDepth
	}
	if o.CompareMaxDepth != nil {
		c.Compare.MaxDepth = *o.CompareMaxDepth
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence: explicit flags
// win over the config file, the config file over defaults. An empty path skips
// the file.
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
