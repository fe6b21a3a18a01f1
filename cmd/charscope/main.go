// Package main provides the charscope CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"charscope/internal/config"
	"charscope/internal/logging"
	"charscope/internal/ux"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Loaded in PersistentPreRunE
	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "charscope",
	Short: "charscope - per-character text analyzer",
	Long: `charscope breaks text into characters and tags each one:
ASCII or Unicode, Korean, emoji, and whitespace, digit, alphabetic or special.

Run without arguments to start the interactive analyzer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive view owns the terminal; keep zap off stderr there.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
		} else {
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		return loadWorkspace()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")

	addAnalysisFlags(rootCmd, &rootFlags, "Pause before showing results (default from ui.delay)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveWorkspace returns the absolute workspace directory.
func resolveWorkspace() (string, error) {
	ws := workspace
	if ws == "" {
		var err error
		ws, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve workspace: %w", err)
		}
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return abs, nil
}

// loadWorkspace loads config, starts category logging and upgrades old
// preference files.
func loadWorkspace() error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}

	loaded, err := config.Load(config.Path(ws))
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", config.Path(ws), err)
	}
	cfg = loaded

	if err := logging.Initialize(ws, cfg.Logging); err != nil {
		logger.Warn("File logging disabled", zap.Error(err))
	} else if logging.IsDebugMode() {
		logger.Debug("File logging enabled", zap.String("dir", filepath.Join(ws, config.DirName, "logs")))
	}

	res, err := ux.MigratePreferences(ws)
	if err != nil {
		logger.Warn("Preferences migration failed", zap.Error(err))
		logging.BootError("Preferences migration failed: %v", err)
	} else if res.WasMigrated {
		logging.Config("Migrated preferences from %q to %s", res.FromVersion, res.ToVersion)
	}

	logging.Boot("Workspace %s loaded (mode=%s, theme=%s)", ws, cfg.Analysis.Mode, cfg.UI.Theme)
	return nil
}

// currentConfig returns the loaded config, or defaults when a command runs
// without PersistentPreRunE (as in tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

func getLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
