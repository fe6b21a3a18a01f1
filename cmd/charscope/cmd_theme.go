package main

import (
	"fmt"

	"charscope/internal/config"
	"charscope/internal/logging"
	"charscope/internal/ux"

	"github.com/spf13/cobra"
)

// themeCmd shows or changes the persisted theme.
var themeCmd = &cobra.Command{
	Use:       "theme [show|toggle|light|dark]",
	Short:     "Show or change the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"show", "toggle", "light", "dark"},
	RunE:      runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	pm := ux.NewPreferencesManager(ws)
	pm.SetDefaultTheme(defaultTheme(currentConfig()))
	return themeAction(cmd, pm, args)
}

func themeAction(cmd *cobra.Command, store ux.ThemeStore, args []string) error {
	action := "show"
	if len(args) == 1 {
		action = args[0]
	}

	current, err := store.LoadTheme()
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	next := current
	switch action {
	case "show":
		fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", current)
		return nil
	case "toggle":
		next = ux.Toggle(current)
	case ux.ThemeLight, ux.ThemeDark:
		next = action
	default:
		return fmt.Errorf("%w: %q (valid: show, toggle, light, dark)", config.ErrInvalidTheme, action)
	}

	if err := store.SaveTheme(next); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	logging.Config("Theme changed from %s to %s", current, next)
	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", next)
	return nil
}
