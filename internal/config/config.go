package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/codenav/internal/model"
)

const (
	appName       = "codenav"
	defaultTheme  = "tokyo-night"
	defaultEditor = "vi"

	DefaultDateFormat = "%Y-%m-%d %H:%M"

	DefaultMaxHistory = 5
)

// StorageConfig selects where document state is kept
type StorageConfig struct {
	Backend string `toml:"backend"` // "json" or "sqlite"
	Path    string `toml:"path"`    // empty means <project>/.codenav/solution.<ext>
}

// Config holds application configuration
type Config struct {
	Theme      string        `toml:"theme"`
	Editor     string        `toml:"editor"`
	MaxHistory int           `toml:"max_history"`
	DateFormat string        `toml:"date_format"` // strftime format of export timestamps
	Storage    StorageConfig `toml:"storage"`

	// Palette for documents that have no saved state yet
	BookmarkStyles []model.BookmarkStyle `toml:"bookmark_styles"`

	Settings map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = defaultTheme
	}
	if c.MaxHistory <= 0 {
		c.MaxHistory = DefaultMaxHistory
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "json"
	}
	if len(c.BookmarkStyles) == 0 {
		c.BookmarkStyles = model.DefaultBookmarkStyles()
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.sessionSettings = make(map[string]string)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// EditorCommand returns the editor used to jump to code: the configured
// editor, then $EDITOR, then vi
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return defaultEditor
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first.
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	return c.Settings[key]
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string, len(c.Settings)+len(c.sessionSettings))
	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}
	return result
}

// Save persists the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.SaveToFile(configPath)
}

// SaveToFile writes the configuration as TOML. Session settings are not written.
func (c *Config) SaveToFile(filePath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
