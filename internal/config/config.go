package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory that holds config, preferences and
// logs.
const DirName = ".charscope"

// FileName is the config file inside DirName.
const FileName = "config.yaml"

// MinCardWidth is the narrowest card that still fits its field rows.
const MinCardWidth = 24

var (
	ErrInvalidMode   = errors.New("invalid analysis mode")
	ErrInvalidPolicy = errors.New("invalid korean policy")
	ErrInvalidTheme  = errors.New("invalid theme")
)

// Config holds all charscope configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	UI       UIConfig       `yaml:"ui"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig configures the analyzer.
type AnalysisConfig struct {
	Mode         string `yaml:"mode"`          // codepoint, utf16
	KoreanPolicy string `yaml:"korean_policy"` // untagged, special
}

// UIConfig configures the terminal presentation.
type UIConfig struct {
	Theme         string `yaml:"theme"`          // light, dark, auto (initial value; the toggle persists in preferences)
	Delay         string `yaml:"delay"`          // synthetic pause before results
	ToastDuration string `yaml:"toast_duration"` // how long notices stay up
	CardWidth     int    `yaml:"card_width"`    // >= MinCardWidth
	CardsPerRow   int    `yaml:"cards_per_row"` // 0 fits the width
}

// ServerConfig configures the HTTP endpoint.
type ServerConfig struct {
	Listen   string `yaml:"listen"`
	MaxInput int    `yaml:"max_input"` // in runes
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Mode:         "codepoint",
			KoreanPolicy: "untagged",
		},
		UI: UIConfig{
			Theme:         "light",
			Delay:         "300ms",
			ToastDuration: "3s",
			CardWidth:     28,
			CardsPerRow:   0,
		},
		Server: ServerConfig{
			Listen:   ":8787",
			MaxInput: 10000,
		},
		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
		},
	}
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, DirName, FileName)
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases, after a .env
// file next to the config (if any) has been loaded.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env never overrides variables already present in the environment.
	envFile := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CHARSCOPE_MODE"); v != "" {
		c.Analysis.Mode = v
	}
	if v := os.Getenv("CHARSCOPE_KOREAN_POLICY"); v != "" {
		c.Analysis.KoreanPolicy = v
	}
	if v := os.Getenv("CHARSCOPE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("CHARSCOPE_DELAY"); v != "" {
		c.UI.Delay = v
	}
	if v := os.Getenv("CHARSCOPE_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("CHARSCOPE_MAX_INPUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.MaxInput = n
		}
	}
	if v := os.Getenv("CHARSCOPE_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CHARSCOPE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetDelay returns the synthetic delay as a duration.
func (c *Config) GetDelay() time.Duration {
	d, err := time.ParseDuration(c.UI.Delay)
	if err != nil || d < 0 {
		return 300 * time.Millisecond
	}
	return d
}

// GetToastDuration returns how long a toast stays visible.
func (c *Config) GetToastDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.ToastDuration)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

// ValidModes lists the supported iteration modes.
var ValidModes = []string{"codepoint", "utf16"}

// ValidPolicies lists the supported Korean policies.
var ValidPolicies = []string{"untagged", "special"}

// ValidThemes lists the supported themes.
var ValidThemes = []string{"light", "dark", "auto"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidModes, strings.ToLower(c.Analysis.Mode)) {
		return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidMode, c.Analysis.Mode, ValidModes)
	}
	if !contains(ValidPolicies, c.Analysis.KoreanPolicy) {
		return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidPolicy, c.Analysis.KoreanPolicy, ValidPolicies)
	}
	if !contains(ValidThemes, strings.ToLower(c.UI.Theme)) {
		return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidTheme, c.UI.Theme, ValidThemes)
	}
	delay, err := time.ParseDuration(c.UI.Delay)
	if err != nil {
		return fmt.Errorf("invalid ui.delay %q: %w", c.UI.Delay, err)
	}
	if delay < 0 {
		return fmt.Errorf("ui.delay must not be negative, got %s", c.UI.Delay)
	}
	toast, err := time.ParseDuration(c.UI.ToastDuration)
	if err != nil {
		return fmt.Errorf("invalid ui.toast_duration %q: %w", c.UI.ToastDuration, err)
	}
	if toast <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive, got %s", c.UI.ToastDuration)
	}
	if c.UI.CardWidth < MinCardWidth {
		return fmt.Errorf("ui.card_width must be at least %d, got %d", MinCardWidth, c.UI.CardWidth)
	}
	if c.UI.CardsPerRow < 0 {
		return fmt.Errorf("ui.cards_per_row must not be negative, got %d", c.UI.CardsPerRow)
	}
	if c.Server.MaxInput <= 0 {
		return fmt.Errorf("server.max_input must be positive, got %d", c.Server.MaxInput)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
