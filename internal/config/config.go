package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vango-dev/tessel/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "tessel.json"

	// DefaultMaxFPS caps how many frames are painted per second.
	DefaultMaxFPS = 60

	// DefaultClickTolerance is the pointer travel, in cells, still counted as a click.
	DefaultClickTolerance = 1

	// DefaultResizeDebounceMs is the quiet period before a resize relayouts.
	DefaultResizeDebounceMs = 50

	// DefaultDevtoolsAddr is the devtools listen address.
	DefaultDevtoolsAddr = "127.0.0.1:7070"

	// DefaultLogLevel is the minimum level written to the log file.
	DefaultLogLevel = "info"

	// DefaultNamespace prefixes every exported metric.
	DefaultNamespace = "tessel"

	// MaxFPSLimit is the highest accepted maxFps value.
	MaxFPSLimit = 240
)

// Config represents the complete tessel.json configuration.
type Config struct {
	// MaxFPS caps the redraw rate. Invalidations arriving faster are coalesced.
	MaxFPS int `json:"maxFps"`

	// ClickTolerance is the maximum pointer movement between press and release
	// that still produces a click.
	ClickTolerance int `json:"clickTolerance"`

	// TabNavigation enables Tab / Shift-Tab focus traversal.
	TabNavigation bool `json:"tabNavigation"`

	// Strict turns structural misuse into panics.
	Strict bool `json:"strict"`

	// ResizeDebounceMs delays relayout after terminal resizes.
	ResizeDebounceMs int `json:"resizeDebounceMs"`

	// Mouse enables mouse reporting in the terminal backend.
	Mouse bool `json:"mouse"`

	// AltScreen runs the terminal backend in the alternate screen buffer.
	AltScreen bool `json:"altScreen"`

	// Log contains log file configuration.
	Log LogConfig `json:"log"`

	// Devtools contains the inspector server configuration.
	Devtools DevtoolsConfig `json:"devtools"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// configPath is the path the config was loaded from.
	configPath string
}

// LogConfig configures the log file.
type LogConfig struct {
	// File is the log file path. Empty disables logging.
	File string `json:"file,omitempty"`

	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`
}

// DevtoolsConfig configures the devtools HTTP server.
type DevtoolsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		MaxFPS:           DefaultMaxFPS,
		ClickTolerance:   DefaultClickTolerance,
		TabNavigation:    true,
		ResizeDebounceMs: DefaultResizeDebounceMs,
		Mouse:            true,
		AltScreen:        true,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Devtools: DevtoolsConfig{
			Addr: DefaultDevtoolsAddr,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for tessel.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("T020").
				WithDetail("No tessel.json found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("T020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("T020").
			WithDetail("Failed to parse tessel.json: " + err.Error()).
			WithSuggestion("Check that tessel.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, cfg.Validate()
}

// LoadOrDefault loads tessel.json from dir, falling back to defaults when the
// file does not exist. Parse and validation errors are still returned.
func LoadOrDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("T020").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("T020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for zero fields.
func (c *Config) applyDefaults() {
	if c.MaxFPS == 0 {
		c.MaxFPS = DefaultMaxFPS
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Devtools.Addr == "" {
		c.Devtools.Addr = DefaultDevtoolsAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxFPS < 1 || c.MaxFPS > MaxFPSLimit {
		return errors.New("T021").
			WithDetailf("maxFps must be between 1 and %d, got %d", MaxFPSLimit, c.MaxFPS)
	}
	if c.ClickTolerance < 0 {
		return errors.New("T021").
			WithDetailf("clickTolerance must not be negative, got %d", c.ClickTolerance)
	}
	if c.ResizeDebounceMs < 0 {
		return errors.New("T021").
			WithDetailf("resizeDebounceMs must not be negative, got %d", c.ResizeDebounceMs)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("T021").
			WithDetailf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
