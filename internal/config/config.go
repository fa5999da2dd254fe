// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
	"gopkg.in/yaml.v3"
)

// Default values applied by Defaults.
const (
	DefaultPort             = 8080
	DefaultOutputDir        = "out"
	DefaultExportTimeout    = "60s"
	DefaultPreviewCacheSize = 128
	DefaultTemperature      = 0.7
)

// Config represents the configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults, the
// environment or CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Text generation
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`         // Gemini API key
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`             // Overrides the standard-tier model
	Temperature float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"` // Sampling temperature (0.0-2.0)

	// Rendering and export
	DefaultTemplate  string       `json:"default_template,omitempty" yaml:"default_template,omitempty"`
	OutputDir        string       `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ExportTimeout    string       `json:"export_timeout,omitempty" yaml:"export_timeout,omitempty"` // Go duration, e.g. "60s"
	Chrome           ChromeConfig `json:"chrome,omitempty" yaml:"chrome,omitempty"`
	PreviewCacheSize int          `json:"preview_cache_size,omitempty" yaml:"preview_cache_size,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// ChromeConfig controls the headless browser used for PDF export.
type ChromeConfig struct {
	NoSandbox bool   `json:"no_sandbox,omitempty" yaml:"no_sandbox,omitempty"`
	ExecPath  string `json:"exec_path,omitempty" yaml:"exec_path,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:             DefaultPort,
		Temperature:      DefaultTemperature,
		DefaultTemplate:  string(types.DefaultTemplate),
		OutputDir:        DefaultOutputDir,
		ExportTimeout:    DefaultExportTimeout,
		PreviewCacheSize: DefaultPreviewCacheSize,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by the
// file extension (.yaml and .yml are YAML, anything else JSON).
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Zero values are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0.0 and 2.0")
	}
	if c.PreviewCacheSize < 0 {
		return fmt.Errorf("config error: 'preview_cache_size' must be non-negative")
	}
	if c.DefaultTemplate != "" {
		if _, err := types.ParseTemplateID(c.DefaultTemplate); err != nil {
			return fmt.Errorf("config error: 'default_template': %w", err)
		}
	}
	if c.ExportTimeout != "" {
		d, err := time.ParseDuration(c.ExportTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'export_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'export_timeout' must be positive")
		}
	}
	if c.Chrome.ExecPath != "" {
		if _, err := os.Stat(c.Chrome.ExecPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.Chrome.ExecPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ExportTimeout == "" {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.Chrome.ExecPath == "" {
		result.Chrome.ExecPath = defaults.Chrome.ExecPath
	}
	if result.PreviewCacheSize == 0 {
		result.PreviewCacheSize = defaults.PreviewCacheSize
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.Chrome.NoSandbox = result.Chrome.NoSandbox || defaults.Chrome.NoSandbox
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// apiKeyEnv lists the environment variables holding the API key, in
// lookup order.
var apiKeyEnv = []string{"GEMINI_API_KEY", "API_KEY", "VITE_API_KEY"}

// ApplyEnv overrides fields from environment variables read with getenv.
// The API key comes from the first of GEMINI_API_KEY, API_KEY and
// VITE_API_KEY that is set; the file value is kept otherwise.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if key := ResolveAPIKey(getenv); key != "" {
		c.APIKey = key
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := getenv("GEMINI_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("CV_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := getenv("CHROME_PATH"); v != "" {
		c.Chrome.ExecPath = v
	}
	if v := getenv("CHROME_NO_SANDBOX"); v != "" {
		noSandbox, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CHROME_NO_SANDBOX %q: %w", v, err)
		}
		c.Chrome.NoSandbox = noSandbox
	}
	return nil
}

// ResolveAPIKey returns the first non-empty API key variable.
func ResolveAPIKey(getenv func(string) string) string {
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// ExportTimeoutDuration returns the parsed export timeout, or zero when
// unset or invalid.
func (c *Config) ExportTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ExportTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Template returns the configured default layout.
func (c *Config) Template() types.TemplateID {
	id, err := types.ParseTemplateID(c.DefaultTemplate)
	if err != nil {
		return types.DefaultTemplate
	}
	return id
}

// Load builds the effective configuration: the optional file at path, then
// environment overrides, then defaults. The result is validated.
func Load(path string, getenv func(string) string) (Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.MergeWithDefaults(Defaults()), nil
}
