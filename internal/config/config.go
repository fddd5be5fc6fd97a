package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vango-dev/vnative/internal/errors"
)

const (
	// ConfigFileName is the JSON configuration file.
	ConfigFileName = "vnative.json"

	// TOMLFileName is the TOML configuration file. It is read when
	// ConfigFileName is absent.
	TOMLFileName = "vnative.toml"

	// DefaultApp is the default application document.
	DefaultApp = "app.yaml"

	// DefaultRootKey is the root key dev renders into.
	DefaultRootKey = "main"

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "localhost:7700"

	// DefaultDebounce is the default watch debounce.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vnative"
)

// Config is a vnative project configuration.
type Config struct {
	// App is the application document, relative to the config directory.
	App string `json:"app,omitempty" toml:"app,omitempty"`

	// RootKey is the root key renders use.
	RootKey string `json:"rootKey,omitempty" toml:"rootKey,omitempty"`

	Inspector InspectorConfig `json:"inspector,omitempty" toml:"inspector,omitempty"`
	Dev       DevConfig       `json:"dev,omitempty" toml:"dev,omitempty"`
	Log       LogConfig       `json:"log,omitempty" toml:"log,omitempty"`
	Metrics   MetricsConfig   `json:"metrics,omitempty" toml:"metrics,omitempty"`

	configPath string
}

// InspectorConfig configures the inspector server.
type InspectorConfig struct {
	// Enabled starts the inspector during dev.
	Enabled *bool `json:"enabled,omitempty" toml:"enabled,omitempty"`

	// Addr is the listen address.
	Addr string `json:"addr,omitempty" toml:"addr,omitempty"`
}

// DevConfig configures hot reload.
type DevConfig struct {
	// Debounce delays a reload after a change (e.g. "200ms").
	Debounce string `json:"debounce,omitempty" toml:"debounce,omitempty"`

	// Watch lists extra paths to watch besides the app document.
	Watch []string `json:"watch,omitempty" toml:"watch,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" toml:"level,omitempty"`
}

// MetricsConfig configures metric names.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the configuration in dir, preferring vnative.json over
// vnative.toml. A directory with neither yields the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	c := New()
	c.configPath = filepath.Join(dir, ConfigFileName)
	return c, nil
}

// LoadFile reads the configuration at path. The format follows the
// extension: .toml is TOML, anything else JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E010").WithDetail("Cannot read " + path).Wrap(err)
	}

	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E010").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration as JSON to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E010").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E010").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory of the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.App == "" {
		c.App = DefaultApp
	}
	if c.RootKey == "" {
		c.RootKey = DefaultRootKey
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Inspector.Enabled == nil {
		enabled := true
		c.Inspector.Enabled = &enabled
	}
	if c.Dev.Debounce == "" {
		c.Dev.Debounce = DefaultDebounce.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if d, err := time.ParseDuration(c.Dev.Debounce); err != nil || d < 0 {
		return errors.New("E011").
			WithDetail("dev.debounce must be a non-negative duration, got " + c.Dev.Debounce)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E011").WithDetail(err.Error())
	}
	if strings.ContainsAny(c.Metrics.Namespace, " -.") {
		return errors.New("E011").
			WithDetail("metrics.namespace must be a Prometheus name, got " + c.Metrics.Namespace)
	}
	if strings.TrimSpace(c.RootKey) == "" {
		return errors.New("E011").WithDetail("rootKey must not be blank")
	}
	return nil
}

// InspectorEnabled reports whether dev starts the inspector.
func (c *Config) InspectorEnabled() bool {
	return c.Inspector.Enabled == nil || *c.Inspector.Enabled
}

// DebounceDuration returns dev.debounce, or DefaultDebounce when invalid.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Dev.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

// AppPath returns the application document path.
func (c *Config) AppPath() string {
	return c.resolve(c.App)
}

// WatchPaths returns the app document and the extra watch paths, resolved
// against the config directory, without duplicates.
func (c *Config) WatchPaths() []string {
	paths := []string{c.AppPath()}
	for _, p := range c.Dev.Watch {
		paths = append(paths, c.resolve(p))
	}

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}
	return unique
}

// LogLevel returns the slog level for log.level.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir() == "" {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}
