package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"charscope/cmd/charscope/ui"
	"charscope/internal/analysis"
	"charscope/internal/charclass"
	"charscope/internal/logging"
	"charscope/internal/ux"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeFile   string
	analyzeFormat string
	analyzeWidth  int
	analyzeRaw    bool
)

// analyzeCmd classifies text given as arguments, a file or stdin.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Classify every character of a text",
	Long: `Prints one record per character plus summary counts.

Input is taken from the arguments (joined with spaces), from --file, or from
stdin when the only argument (or --file) is "-".

Formats:
  cards     character cards and a summary panel (default)
  table     a plain table of records and a summary table
  json      machine-readable result
  markdown  a markdown report rendered for the terminal (--raw to skip styling)`,
	Example: `  charscope analyze "Ab1 가"
  echo "hello 😀" | charscope analyze - --format json
  charscope analyze --file notes.txt --mode utf16 --format table`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read input from a file (- for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "cards", "Output format: cards, table, json, markdown")
	analyzeCmd.Flags().IntVar(&analyzeWidth, "width", 100, "Output width for cards and markdown")
	analyzeCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "Print markdown without terminal styling")
	addAnalysisFlags(analyzeCmd, &analyzeFlags, "Pause before printing results")
}

// slowAnalysis is the duration above which a run is logged as a warning.
const slowAnalysis = 250 * time.Millisecond

// jsonReport is the shape printed by --format json.
type jsonReport struct {
	Mode        analysis.Mode      `json:"mode"`
	Records     []analysis.Record  `json:"records"`
	Summary     analysis.Summary   `json:"summary"`
	Percentages map[string]float64 `json:"percentages"`
	Stats       []analysis.Stat    `json:"stats"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := getLogger()
	c := currentConfig()

	input, err := readInput(cmd.InOrStdin(), args, analyzeFile)
	if err != nil {
		return err
	}
	if err := analysis.ValidateInput(input); err != nil {
		return err
	}

	opts, err := resolveOptions(analyzeFlags, c)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := pause(ctx, delayFor(cmd, analyzeFlags, 0)); err != nil {
		return err
	}

	timer := logging.StartTimer(logging.CategoryAnalysis, "analyze")
	res := analysis.New(opts).Analyze(input)
	timer.StopWithThreshold(slowAnalysis)
	log.Debug("Analyzed input",
		zap.String("mode", string(res.Mode)),
		zap.Int("total", res.Summary.Total))
	logging.Analysis("CLI analyzed %d units (mode=%s, policy=%s)", res.Summary.Total, opts.Mode, opts.KoreanPolicy)

	return writeResult(cmd.OutOrStdout(), res, analyzeFormat)
}

// readInput resolves the input text from args, a file or stdin.
func readInput(stdin io.Reader, args []string, file string) (string, error) {
	switch {
	case file == "-" || (file == "" && len(args) == 1 && args[0] == "-"):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) == 0:
		return "", analysis.ErrBlankInput
	}
	return strings.Join(args, " "), nil
}

// pause waits d unless ctx ends first. A zero or negative d means no pause.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func writeResult(w io.Writer, res analysis.Result, format string) error {
	c := currentConfig()
	styles := ui.NewStyles(ui.ThemeByName(savedTheme()))

	switch strings.ToLower(format) {
	case "", "cards":
		perRow := c.UI.CardsPerRow
		if perRow <= 0 {
			perRow = ui.CardsPerRow(analyzeWidth, c.UI.CardWidth)
		}
		fmt.Fprintln(w, ui.RenderSummary(res.Summary, styles, analyzeWidth))
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.RenderCards(res.Records, styles, c.UI.CardWidth, perRow))
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Success.Render(fmt.Sprintf("Analysis complete for %d characters!", res.Summary.Total)))
		return nil

	case "table":
		fmt.Fprint(w, ui.RecordsTable(res.Records).View(styles))
		if stats, err := res.Summary.Stats(); err == nil {
			fmt.Fprint(w, ui.StatsTable(stats).View(styles))
		}
		return nil

	case "json":
		stats, _ := res.Summary.Stats()
		pct := make(map[string]float64, len(charclass.AllTags))
		for _, t := range charclass.AllTags {
			pct[t.String()], _ = res.Summary.Percent(t)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport{
			Mode:        res.Mode,
			Records:     res.Records,
			Summary:     res.Summary,
			Percentages: pct,
			Stats:       stats,
		})

	case "markdown", "md":
		md := ui.MarkdownReport(res)
		if analyzeRaw {
			_, err := io.WriteString(w, md)
			return err
		}
		out, err := ui.RenderMarkdown(md, analyzeWidth, styles.Theme.IsDark)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("unknown format %q (valid: cards, table, json, markdown)", format)
}

// savedTheme returns the persisted theme, falling back to ui.theme.
func savedTheme() string {
	fallback := defaultTheme(currentConfig())
	ws, err := resolveWorkspace()
	if err != nil {
		return fallback
	}
	pm := ux.NewPreferencesManager(ws)
	pm.SetDefaultTheme(fallback)
	theme, err := pm.LoadTheme()
	if err != nil {
		return fallback
	}
	return theme
}
