package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Analysis.Mode != "codepoint" {
		t.Errorf("expected Mode=codepoint, got %s", cfg.Analysis.Mode)
	}
	if cfg.Analysis.KoreanPolicy != "untagged" {
		t.Errorf("expected KoreanPolicy=untagged, got %s", cfg.Analysis.KoreanPolicy)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected Theme=light, got %s", cfg.UI.Theme)
	}
	if cfg.GetDelay() != 300*time.Millisecond {
		t.Errorf("expected 300ms delay, got %v", cfg.GetDelay())
	}
	if cfg.GetToastDuration() != 3*time.Second {
		t.Errorf("expected 3s toast, got %v", cfg.GetToastDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("CHARSCOPE_MODE", "")
	t.Setenv("CHARSCOPE_THEME", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DirName, FileName)

	cfg := DefaultConfig()
	cfg.Analysis.Mode = "utf16"
	cfg.UI.Theme = "dark"
	cfg.Server.MaxInput = 42

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Analysis.Mode != "utf16" {
		t.Errorf("expected Mode=utf16, got %s", loaded.Analysis.Mode)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.UI.Theme)
	}
	if loaded.Server.MaxInput != 42 {
		t.Errorf("expected MaxInput=42, got %d", loaded.Server.MaxInput)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("CHARSCOPE_MODE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Listen != ":8787" {
		t.Errorf("expected default listen address, got %s", cfg.Server.Listen)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("analysis: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad mode", func(c *Config) { c.Analysis.Mode = "grapheme" }, ErrInvalidMode},
		{"bad policy", func(c *Config) { c.Analysis.KoreanPolicy = "hangul" }, ErrInvalidPolicy},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, ErrInvalidTheme},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	cfg := DefaultConfig()
	cfg.UI.Delay = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unparsable delay")
	}

	cfg = DefaultConfig()
	cfg.Server.MaxInput = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero max_input")
	}

	cfg = DefaultConfig()
	cfg.Analysis.Mode = "UTF16"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mode should be case-insensitive: %v", err)
	}
}

func TestConfig_ValidateUI(t *testing.T) {
	invalid := map[string]func(*Config){
		"negative delay":     func(c *Config) { c.UI.Delay = "-1s" },
		"unparsable toast":   func(c *Config) { c.UI.ToastDuration = "later" },
		"zero toast":         func(c *Config) { c.UI.ToastDuration = "0s" },
		"narrow card":        func(c *Config) { c.UI.CardWidth = MinCardWidth - 1 },
		"negative row count": func(c *Config) { c.UI.CardsPerRow = -2 },
	}
	for name, mutate := range invalid {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	valid := map[string]func(*Config){
		"zero delay":      func(c *Config) { c.UI.Delay = "0s" },
		"auto theme":      func(c *Config) { c.UI.Theme = "auto" },
		"min card width":  func(c *Config) { c.UI.CardWidth = MinCardWidth },
		"fixed row count": func(c *Config) { c.UI.CardsPerRow = 3 },
	}
	for name, mutate := range valid {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}
}

func TestConfig_DurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.Delay = "garbage"
	cfg.UI.ToastDuration = "-1s"
	if cfg.GetDelay() != 300*time.Millisecond {
		t.Errorf("expected fallback delay, got %v", cfg.GetDelay())
	}
	if cfg.GetToastDuration() != 3*time.Second {
		t.Errorf("expected fallback toast duration, got %v", cfg.GetToastDuration())
	}

	cfg.UI.Delay = "0s"
	if cfg.GetDelay() != 0 {
		t.Errorf("zero delay should be honoured, got %v", cfg.GetDelay())
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("analysis") {
		t.Error("categories must be off when debug_mode is false")
	}

	lc.DebugMode = true
	if !lc.IsCategoryEnabled("analysis") {
		t.Error("unlisted category should default to enabled")
	}

	lc.Categories = map[string]bool{"api": false}
	if lc.IsCategoryEnabled("api") {
		t.Error("explicitly disabled category reported enabled")
	}
	if !lc.IsCategoryEnabled("ui") {
		t.Error("unlisted category should stay enabled")
	}
}
