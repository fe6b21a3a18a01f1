package main

import (
	"fmt"
	"time"

	"charscope/cmd/charscope/ui"
	"charscope/internal/analysis"
	"charscope/internal/charclass"
	"charscope/internal/config"

	"github.com/spf13/cobra"
)

// analysisFlags are shared by the interactive root and analyze.
type analysisFlags struct {
	mode         string
	koreanPolicy string
	delay        time.Duration
}

var (
	rootFlags    analysisFlags
	analyzeFlags analysisFlags
)

func addAnalysisFlags(cmd *cobra.Command, f *analysisFlags, delayHelp string) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Iteration unit: codepoint or utf16 (default from config)")
	cmd.Flags().StringVar(&f.koreanPolicy, "korean-policy", "", "Exclusive tag for Hangul that is not whitespace, digit or letter: untagged or special (default from config)")
	cmd.Flags().DurationVar(&f.delay, "delay", 0, delayHelp)
}

// delayFor returns the --delay value when it was given and fallback
// otherwise.
func delayFor(cmd *cobra.Command, f analysisFlags, fallback time.Duration) time.Duration {
	if flag := cmd.Flags().Lookup("delay"); flag != nil && flag.Changed {
		return f.delay
	}
	return fallback
}

// defaultTheme is the theme used while no preference has been saved.
func defaultTheme(c *config.Config) string {
	return ui.ResolveThemeName(c.UI.Theme)
}

// resolveOptions merges flags over config.
func resolveOptions(f analysisFlags, c *config.Config) (analysis.Options, error) {
	modeName := c.Analysis.Mode
	if f.mode != "" {
		modeName = f.mode
	}
	mode, err := analysis.ParseMode(modeName)
	if err != nil {
		return analysis.Options{}, fmt.Errorf("%w: %v", config.ErrInvalidMode, err)
	}

	policyName := c.Analysis.KoreanPolicy
	if f.koreanPolicy != "" {
		policyName = f.koreanPolicy
	}
	policy, err := charclass.ParseKoreanPolicy(policyName)
	if err != nil {
		return analysis.Options{}, fmt.Errorf("%w: %v", config.ErrInvalidPolicy, err)
	}

	return analysis.Options{Mode: mode, KoreanPolicy: policy}, nil
}
