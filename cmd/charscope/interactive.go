// Package main provides the charscope CLI entry point.
// This file implements the interactive analyzer using bubbletea.
package main

import (
	"fmt"
	"strings"
	"time"

	"charscope/cmd/charscope/ui"
	"charscope/internal/analysis"
	"charscope/internal/charclass"
	"charscope/internal/logging"
	"charscope/internal/ux"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// analyzerOptions configures a new interactive model.
type analyzerOptions struct {
	Analysis      analysis.Options
	Themes        ux.ThemeStore
	Delay         time.Duration
	ToastDuration time.Duration
	CardWidth     int
	CardsPerRow   int
	// OnAnalyzed runs after every completed analysis.
	OnAnalyzed func(analysis.Result)
	Now        func() time.Time
}

// analyzerModel is the main model for the interactive analyzer
type analyzerModel struct {
	// UI Components
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles

	// State
	theme     string
	isLoading bool
	seq       int // ignores results of superseded runs
	result    *analysis.Result
	toast     ui.Toast
	width     int
	height    int
	ready     bool

	// Backend
	analyzer *analysis.Analyzer
	opts     analyzerOptions
}

// Messages for tea updates
type (
	analysisDoneMsg struct {
		seq    int
		result analysis.Result
	}
	toastExpiredMsg struct {
		expires time.Time
	}
)

const inputHeight = 5

func newAnalyzerModel(opts analyzerOptions) analyzerModel {
	if opts.Themes == nil {
		opts.Themes = ux.NewMemoryThemeStore(ux.ThemeLight)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = ui.DefaultToastDuration
	}
	if opts.CardWidth < ui.MinCardWidth {
		opts.CardWidth = ui.MinCardWidth
	}

	theme, err := opts.Themes.LoadTheme()
	if err != nil {
		logging.UIDebug("Falling back to light theme: %v", err)
		theme = ux.ThemeLight
	}
	styles := ui.NewStyles(ui.ThemeByName(theme))

	ta := textarea.New()
	ta.Placeholder = "Type or paste text to analyze... (Ctrl+R to analyze)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	return analyzerModel{
		input:    ta,
		viewport: vp,
		spinner:  sp,
		styles:   styles,
		theme:    theme,
		analyzer: analysis.New(opts.Analysis),
		opts:     opts,
	}
}

func (m analyzerModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m analyzerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlR:
			if m.isLoading {
				return m, nil
			}
			return m.startAnalysis()

		case tea.KeyCtrlT:
			return m.toggleTheme()

		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

		if !m.isLoading {
			m.input, taCmd = m.input.Update(msg)
		}
		return m, taCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)

		// header, input box, status line, toast line, divider, footer
		chrome := 3 + inputHeight + 2 + 1 + 1 + 1 + 1
		vh := msg.Height - chrome
		if vh < 3 {
			vh = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vh)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vh
		}
		m.refreshResults()
		return m, nil

	case spinner.TickMsg:
		if m.isLoading {
			var spCmd tea.Cmd
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil

	case analysisDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.isLoading = false
		res := msg.result
		m.result = &res
		m.refreshResults()
		m.viewport.GotoTop()
		if m.opts.OnAnalyzed != nil {
			m.opts.OnAnalyzed(res)
		}
		return m, m.showToast(ui.CompleteToast(res.Summary.Total, m.opts.Now(), m.opts.ToastDuration))

	case toastExpiredMsg:
		if msg.expires.Equal(m.toast.Expires) {
			m.toast = ui.Toast{}
		}
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	if !m.isLoading {
		m.input, taCmd = m.input.Update(msg)
	}
	return m, tea.Batch(taCmd, vpCmd)
}

// startAnalysis validates the input and schedules the result after the
// configured delay.
func (m analyzerModel) startAnalysis() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if err := analysis.ValidateInput(text); err != nil {
		logging.UIDebug("Rejected blank input")
		return m, m.showToast(ui.BlankInputToast(m.opts.Now(), m.opts.ToastDuration))
	}

	m.isLoading = true
	m.seq++
	logging.UI("Analysis %d started (%d units)", m.seq, analysis.CharCount(text, m.analyzer.Mode()))
	return m, tea.Batch(m.spinner.Tick, runAnalysis(m.analyzer, m.seq, text, m.opts.Delay))
}

// runAnalysis returns a command producing analysisDoneMsg after delay.
func runAnalysis(a *analysis.Analyzer, seq int, text string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg {
			return analysisDoneMsg{seq: seq, result: a.Analyze(text)}
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return analysisDoneMsg{seq: seq, result: a.Analyze(text)}
	})
}

func (m *analyzerModel) showToast(t ui.Toast) tea.Cmd {
	m.toast = t
	d := t.Expires.Sub(m.opts.Now())
	expires := t.Expires
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{expires: expires}
	})
}

func (m analyzerModel) toggleTheme() (tea.Model, tea.Cmd) {
	next := ux.Toggle(m.theme)
	if err := m.opts.Themes.SaveTheme(next); err != nil {
		logging.Get(logging.CategoryUI).Error("Failed to save theme: %v", err)
		return m, m.showToast(ui.NewToast("Could not save theme: "+err.Error(), ui.ToastError, m.opts.Now(), m.opts.ToastDuration))
	}
	m.theme = next
	m.styles = ui.NewStyles(ui.ThemeByName(next))
	m.spinner.Style = m.styles.Spinner
	m.refreshResults()
	logging.UI("Theme toggled to %s", next)
	return m, nil
}

func (m *analyzerModel) refreshResults() {
	if m.result == nil {
		m.viewport.SetContent("")
		return
	}
	perRow := m.opts.CardsPerRow
	if perRow <= 0 {
		perRow = ui.CardsPerRow(m.viewport.Width, m.opts.CardWidth)
	}
	content := ui.RenderSummary(m.result.Summary, m.styles, m.viewport.Width) +
		"\n\n" +
		ui.RenderCards(m.result.Records, m.styles, m.opts.CardWidth, perRow)
	m.viewport.SetContent(content)
}

// charCount is the "N chars" readout for the current input.
func (m analyzerModel) charCount() string {
	return fmt.Sprintf("%d chars", analysis.CharCount(m.input.Value(), m.analyzer.Mode()))
}

func (m analyzerModel) View() string {
	var sb strings.Builder

	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Input.Render(m.input.View()))
	sb.WriteString("\n")

	status := m.styles.Muted.Render(m.charCount())
	if m.isLoading {
		status += "  " + m.spinner.View() + m.styles.Info.Render(" Analyzing...")
	}
	sb.WriteString(status)
	sb.WriteString("\n")

	if m.toast.Visible(m.opts.Now()) {
		sb.WriteString(m.toast.Render(m.styles))
	}
	sb.WriteString("\n")

	if m.result != nil {
		sb.WriteString(m.styles.RenderDivider(m.viewport.Width))
		sb.WriteString("\n")
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n")
	}

	help := fmt.Sprintf("Ctrl+R analyze • Ctrl+T theme (%s) • PgUp/PgDn scroll • Esc quit", m.theme)
	sb.WriteString(m.styles.Footer.Render(help))

	return m.styles.App.Render(sb.String())
}

// runInteractive launches the interactive analyzer
func runInteractive(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	opts, err := resolveOptions(rootFlags, c)
	if err != nil {
		return err
	}

	delay := delayFor(cmd, rootFlags, c.GetDelay())

	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	prefs := ux.NewPreferencesManager(ws)
	prefs.SetDefaultTheme(defaultTheme(c))
	m := newAnalyzerModel(analyzerOptions{
		Analysis:      opts,
		Themes:        prefs,
		Delay:         delay,
		ToastDuration: c.GetToastDuration(),
		CardWidth:     c.UI.CardWidth,
		CardsPerRow:   c.UI.CardsPerRow,
		OnAnalyzed: func(res analysis.Result) {
			_ = prefs.IncrementMetric("analyses_run", 1)
			_ = prefs.IncrementMetric("characters_analyzed", res.Summary.Total)
			logging.Analysis("Interactive run: %d units, %d emoji, %d korean",
				res.Summary.Total, res.Summary.Count(charclass.TagEmoji), res.Summary.Count(charclass.TagKorean))
		},
	})

	_ = prefs.IncrementMetric("sessions_count", 1)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	if saveErr := prefs.Save(); saveErr != nil {
		logging.ConfigError("Failed to save preferences: %v", saveErr)
	}
	return err
}
