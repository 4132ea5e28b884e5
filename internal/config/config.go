// Package config handles configuration and API key management for captionthis.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

// Frontends accepted by the frontend setting
const (
	FrontendTUI     = "tui"
	FrontendConsole = "console"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	BaseURL string `json:"base_url"`
	ChatURL string `json:"chat_url"`
	// DataDir is where caption files are written. Relative paths are
	// resolved against the working directory.
	DataDir         string `json:"data_dir"`
	DefaultStyle    string `json:"default_style"`
	Frontend        string `json:"frontend"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	// Verbose forces debug logging
	Verbose  bool   `json:"verbose"`
	LogLevel string `json:"log_level"`
	// LogFile sends logs to ~/.captionthis/logs instead of stderr
	LogFile  bool           `json:"log_file"`
	TUITheme string         `json:"tui_theme,omitempty"` // TUI color theme
	Markdown MarkdownConfig `json:"markdown,omitempty"`
	// Indexing poll used by the pipeline command
	PollIntervalSeconds int `json:"poll_interval_seconds"`
	PollAttempts        int `json:"poll_attempts"`
	TimeoutSeconds      int `json:"timeout_seconds"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:             models.DefaultBaseURL,
		ChatURL:             models.DefaultChatURL,
		DataDir:             "data",
		DefaultStyle:        models.StyleShort.String(),
		Frontend:            FrontendTUI,
		CopyToClipboard:     false,
		Verbose:             false,
		LogLevel:            "warn",
		LogFile:             false,
		TUITheme:            "tokyonight",
		Markdown:            DefaultMarkdownConfig(),
		PollIntervalSeconds: 2,
		PollAttempts:        60,
		TimeoutSeconds:      300,
	}
}

// Style returns the default caption style, falling back to short
func (c Config) Style() models.PromptStyle {
	style, err := models.ParsePromptStyle(c.DefaultStyle)
	if err != nil {
		return models.StyleShort
	}
	return style
}

// PollInterval returns the indexing poll interval
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".captionthis")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogDir returns the directory log files are written to
func GetLogDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), apierrors.NewConfigError("config.json", "failed to parse config file", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps each settable key to its parser
var setters = map[string]func(c *Config, value string) error{
	"base_url":       func(c *Config, v string) error { c.BaseURL = v; return nil },
	"chat_url":       func(c *Config, v string) error { c.ChatURL = v; return nil },
	"data_dir":       func(c *Config, v string) error { c.DataDir = v; return nil },
	"tui_theme":      func(c *Config, v string) error { c.TUITheme = v; return nil },
	"markdown.style": func(c *Config, v string) error { c.Markdown.Style = v; return nil },
	"default_style": func(c *Config, v string) error {
		style, err := models.ParsePromptStyle(v)
		if err != nil {
			return err
		}
		c.DefaultStyle = style.String()
		return nil
	},
	"frontend": func(c *Config, v string) error {
		v = strings.ToLower(v)
		if v != FrontendTUI && v != FrontendConsole {
			return fmt.Errorf("frontend must be %q or %q", FrontendTUI, FrontendConsole)
		}
		c.Frontend = v
		return nil
	},
	"log_level": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
			c.LogLevel = strings.ToLower(v)
			return nil
		}
		return fmt.Errorf("unknown log level %q", v)
	},
	"copy_to_clipboard":     boolSetter(func(c *Config, b bool) { c.CopyToClipboard = b }),
	"verbose":               boolSetter(func(c *Config, b bool) { c.Verbose = b }),
	"log_file":              boolSetter(func(c *Config, b bool) { c.LogFile = b }),
	"markdown.enable_emoji": boolSetter(func(c *Config, b bool) { c.Markdown.EnableEmoji = b }),
	"poll_interval_seconds": intSetter(func(c *Config, n int) { c.PollIntervalSeconds = n }),
	"poll_attempts":         intSetter(func(c *Config, n int) { c.PollAttempts = n }),
	"timeout_seconds":       intSetter(func(c *Config, n int) { c.TimeoutSeconds = n }),
}

func boolSetter(set func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		set(c, b)
		return nil
	}
}

func intSetter(set func(*Config, int)) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("expected a positive number, got %q", v)
		}
		set(c, n)
		return nil
	}
}

// SettableKeys returns the keys accepted by Set, sorted
func SettableKeys() []string {
	keys := make([]string, 0, len(setters))
	for key := range setters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value into the field named key
func (c *Config) Set(key, value string) error {
	setter, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return apierrors.NewConfigError(key, "unknown setting", nil)
	}
	if err := setter(c, strings.TrimSpace(value)); err != nil {
		return apierrors.NewConfigError(key, err.Error(), err)
	}
	return nil
}
