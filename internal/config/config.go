package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"typeahead/internal/eventbus"
)

// ErrNotFound is returned when an explicit config path does not exist
var ErrNotFound = errors.New("config file not found")

// Default values
const (
	DefaultDebounceMs     = 300
	DefaultCacheSize      = 128
	DefaultKeyReleaseMs   = 150
	DefaultMaxVisibleRows = 8
	DefaultHTTPTimeoutMs  = 5000
	DefaultLogFile        = "typeahead.log"
	DefaultLogLevel       = "info"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Source  string         `toml:"source"` // URL or file path of the dataset
	Search  SearchSettings `toml:"search"`
	UI      UISettings     `toml:"ui"`
	HTTP    HTTPSettings   `toml:"http"`
	Log     LogSettings    `toml:"log"`
}

// SearchSettings tunes the filter pipeline
type SearchSettings struct {
	DebounceMs int `toml:"debounce_ms"`
	CacheSize  int `toml:"cache_size"` // 0 disables result memoisation
}

// UISettings represents UI-related configuration
type UISettings struct {
	KeyReleaseMs   int  `toml:"key_release_ms"`
	MaxVisibleRows int  `toml:"max_visible_rows"`
	Mouse          bool `toml:"mouse"`
}

// HTTPSettings configures the remote data source
type HTTPSettings struct {
	TimeoutMs int `toml:"timeout_ms"`
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Debounce returns the keystroke debounce delay
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

// KeyRelease returns the idle time after which a key is considered released
func (c *Config) KeyRelease() time.Duration {
	return time.Duration(c.UI.KeyReleaseMs) * time.Millisecond
}

// HTTPTimeout returns the request timeout for the remote data source
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutMs) * time.Millisecond
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Search.DebounceMs <= 0 {
		c.Search.DebounceMs = DefaultDebounceMs
	}
	if c.Search.CacheSize < 0 {
		c.Search.CacheSize = 0
	}
	if c.UI.KeyReleaseMs <= 0 {
		c.UI.KeyReleaseMs = DefaultKeyReleaseMs
	}
	if c.UI.MaxVisibleRows <= 0 {
		c.UI.MaxVisibleRows = DefaultMaxVisibleRows
	}
	if c.HTTP.TimeoutMs <= 0 {
		c.HTTP.TimeoutMs = DefaultHTTPTimeoutMs
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "typeahead", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{filePath: path, bus: bus}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Path returns the default config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default file, falling back to defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
		cs.publishLoaded(cs.filePath, cfg, true)
		return cfg, nil
	}
	return cfg, err
}

// Save saves the configuration to the default file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. A missing file is
// ErrNotFound, never defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so missing keys keep sensible values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	cs.publishLoaded(path, cfg, false)
	return cfg, nil
}

func (cs *configService) publishLoaded(path string, cfg *Config, defaults bool) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Source: cfg.Source, Defaults: defaults})
	}
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchSettings{
			DebounceMs: DefaultDebounceMs,
			CacheSize:  DefaultCacheSize,
		},
		UI: UISettings{
			KeyReleaseMs:   DefaultKeyReleaseMs,
			MaxVisibleRows: DefaultMaxVisibleRows,
			Mouse:          true,
		},
		HTTP: HTTPSettings{TimeoutMs: DefaultHTTPTimeoutMs},
		Log: LogSettings{
			File:  DefaultLogFile,
			Level: DefaultLogLevel,
		},
	}
}
