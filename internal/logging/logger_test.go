package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"charscope/internal/config"
)

func resetState(t *testing.T) {
	t.Helper()
	CloseAll()
	configMu.Lock()
	settings = config.LoggingConfig{}
	logsDir = ""
	configMu.Unlock()
	t.Cleanup(func() {
		CloseAll()
		configMu.Lock()
		settings = config.LoggingConfig{}
		logsDir = ""
		configMu.Unlock()
	})
}

func readLogs(t *testing.T, ws string, category Category) string {
	t.Helper()
	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(ws, config.DirName, "logs", date+"_"+string(category)+".log"))
	if err != nil {
		t.Fatalf("Failed to read %s log: %v", category, err)
	}
	return string(data)
}

// TestAllCategoriesLog checks that each category gets its own file in debug mode.
func TestAllCategoriesLog(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, config.LoggingConfig{Level: "debug", DebugMode: true}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("Expected debug mode to be enabled")
	}

	Analysis("analysed %d characters", 5)
	UI("theme toggled to %s", "dark")
	API("request served")
	Config("preferences saved")
	CloseAll()

	for cat, want := range map[Category]string{
		CategoryBoot:     "logging initialized",
		CategoryAnalysis: "analysed 5 characters",
		CategoryUI:       "theme toggled to dark",
		CategoryAPI:      "request served",
		CategoryConfig:   "preferences saved",
	} {
		if got := readLogs(t, ws, cat); !strings.Contains(got, want) {
			t.Errorf("category %s: expected %q in log, got %q", cat, want, got)
		}
	}
}

func TestDebugModeOff_NoFiles(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, config.LoggingConfig{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Analysis("should go nowhere")
	if Get(CategoryAnalysis).Enabled() {
		t.Error("logger should be a no-op when debug mode is off")
	}

	if _, err := os.Stat(filepath.Join(ws, config.DirName, "logs")); !os.IsNotExist(err) {
		t.Errorf("logs directory should not exist, stat err = %v", err)
	}
}

func TestCategoryFilter(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	cfg := config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"api": false},
	}
	if err := Initialize(ws, cfg); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryAPI) {
		t.Error("api category should be disabled")
	}
	if !IsCategoryEnabled(CategoryAnalysis) {
		t.Error("analysis category should default to enabled")
	}
	if Get(CategoryAPI).Enabled() {
		t.Error("disabled category returned a live logger")
	}
}

func TestLevelFiltering(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, config.LoggingConfig{Level: "warn", DebugMode: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	AnalysisDebug("hidden detail")
	Get(CategoryAnalysis).Warn("visible warning")
	CloseAll()

	got := readLogs(t, ws, CategoryAnalysis)
	if strings.Contains(got, "hidden detail") {
		t.Error("debug line written at warn level")
	}
	if !strings.Contains(got, "visible warning") {
		t.Error("warn line missing")
	}
}

func TestWithRequestID(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, config.LoggingConfig{DebugMode: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	WithRequestID(CategoryAPI, "abc-123").Info("analyze %d units", 3)
	CloseAll()

	got := readLogs(t, ws, CategoryAPI)
	if !strings.Contains(got, "abc-123") || !strings.Contains(got, "analyze 3 units") {
		t.Errorf("request line missing fields: %q", got)
	}
}

func TestGet_Concurrent(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, config.LoggingConfig{DebugMode: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	var wg sync.WaitGroup
	got := make([]*Logger, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Get(CategoryUI)
			got[i].Debug("goroutine %d", i)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(got); i++ {
		if got[i] != got[0] {
			t.Fatal("Get returned different loggers for the same category")
		}
	}
}

func TestInitialize_RequiresWorkspace(t *testing.T) {
	resetState(t)
	if err := Initialize("", config.LoggingConfig{}); err == nil {
		t.Fatal("expected error for empty workspace")
	}
}

func TestTimer(t *testing.T) {
	resetState(t)
	timer := StartTimer(CategoryAnalysis, "noop")
	if d := timer.Stop(); d < 0 {
		t.Errorf("negative duration %v", d)
	}
	if d := StartTimer(CategoryAnalysis, "noop").StopWithThreshold(time.Hour); d < 0 {
		t.Errorf("negative duration %v", d)
	}
}
