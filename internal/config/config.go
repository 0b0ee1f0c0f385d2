// Package config loads gradnet configuration from ~/.gradnet/config.json
// with environment-variable overrides. The file is the single source of
// truth; env vars win over file values so shells can redirect a session
// without editing the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoggingConfig controls the categorized file logger.
type LoggingConfig struct {
	// DebugMode enables file logging. False = no logs written.
	DebugMode bool `json:"debug_mode,omitempty"`

	// Categories toggles individual log categories. Absent = enabled.
	Categories map[string]bool `json:"categories,omitempty"`

	// Level is the minimum level written: debug, info, warn, error.
	Level string `json:"level,omitempty"`
}

// UserConfig holds ALL gradnet configuration from ~/.gradnet/config.json.
type UserConfig struct {
	// Gemini API key for the assistant chat. Without it the assistant
	// still runs but every exchange resolves to the fallback reply.
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Optional model override (default gemini-2.0-flash).
	Model string `json:"model,omitempty"`

	// Optional endpoint override, mainly for testing.
	BaseURL string `json:"base_url,omitempty"`

	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`

	// Logging configuration.
	Logging *LoggingConfig `json:"logging,omitempty"`
}

// DefaultConfigDir returns ~/.gradnet, falling back to a relative
// .gradnet when the home directory cannot be resolved.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gradnet"
	}
	return filepath.Join(home, ".gradnet")
}

// DefaultConfigPath returns the default path to config.json.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Load reads configuration from the given path and applies environment
// overrides. A missing file is not an error; overrides still apply.
func Load(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides layers environment variables over file values.
// GRADNET_GEMINI_API_KEY wins over the plain GEMINI_API_KEY fallback.
func (c *UserConfig) applyEnvOverrides() {
	if key := os.Getenv("GRADNET_GEMINI_API_KEY"); key != "" {
		c.GeminiAPIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.GeminiAPIKey == "" {
		c.GeminiAPIKey = key
	}

	if model := os.Getenv("GRADNET_MODEL"); model != "" {
		c.Model = model
	}

	if theme := os.Getenv("GRADNET_THEME"); theme != "" {
		c.Theme = theme
	}
}

// GetModel returns the configured model, defaulting to gemini-2.0-flash.
func (c *UserConfig) GetModel() string {
	if c.Model == "" {
		return "gemini-2.0-flash"
	}
	return c.Model
}

// GetTheme returns the configured theme, defaulting to "dark".
func (c *UserConfig) GetTheme() string {
	switch c.Theme {
	case "light", "dark":
		return c.Theme
	}
	return "dark"
}

// GetLogging returns logging settings with defaults.
func (c *UserConfig) GetLogging() LoggingConfig {
	if c.Logging != nil {
		cfg := *c.Logging
		if cfg.Level == "" {
			cfg.Level = "info"
		}
		return cfg
	}
	return LoggingConfig{
		Level:     "info",
		DebugMode: false,
	}
}

// Save writes configuration to the given path, creating the directory
// if needed.
func (c *UserConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
