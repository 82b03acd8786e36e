package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Storage backends for the task store.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds user preferences. The engine only ever sees
// CollapsedSections; the rest is presentation and plumbing.
type Config struct {
	DarkMode          bool   `yaml:"dark_mode" json:"dark_mode"`
	FontSize          int    `yaml:"font_size" json:"font_size"`
	CollapsedSections []int  `yaml:"collapsed_sections" json:"collapsed_sections"`
	Geometry          string `yaml:"geometry" json:"geometry"` // opaque window placement
	Storage           string `yaml:"storage" json:"storage"`   // "json" or "sqlite"

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`
}

// DefaultFontSize matches the original desktop defaults per platform.
func DefaultFontSize() int {
	if runtime.GOOS == "darwin" {
		return 13
	}
	return 10
}

// DefaultConfig returns default settings.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".todoapp", "logs", "todo.log")
	}

	return &Config{
		DarkMode:          false,
		FontSize:          DefaultFontSize(),
		CollapsedSections: []int{},
		Storage:           getEnv("TODO_STORAGE", StorageJSON),
		LogLevel:          getEnv("TODO_LOG_LEVEL", "INFO"),
		LogFile:           getEnv("TODO_LOG_FILE", logPath),
		LogConsole:        getEnv("TODO_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todoapp", "config.yaml"), nil
}

// Load loads config from ~/.todoapp/config.yaml. A missing or
// malformed file falls back to defaults; config trouble is never
// fatal.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile loads config from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize()
	}
	if cfg.Storage != StorageSQLite {
		cfg.Storage = StorageJSON
	}
	return cfg, nil
}

// Save saves config to ~/.todoapp/config.yaml.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile saves config to an explicit path.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
