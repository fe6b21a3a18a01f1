package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"charscope/internal/analysis"
	"charscope/internal/charclass"
	"charscope/internal/config"
	"charscope/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type analyzeEnvelope struct {
	Data   AnalyzeRes `json:"data"`
	Errors []Err      `json:"errors"`
}

func newTestServer(maxInput int) *Server {
	return New(Config{MaxInput: maxInput}, nil)
}

func post(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, analyzeEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env analyzeEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestAnalyze_OK(t *testing.T) {
	s := newTestServer(100)
	w, env := post(t, s, `{"text":"Ab1 가"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Errors)
	assert.NotEmpty(t, env.Data.ID)
	assert.Equal(t, analysis.ModeCodePoint, env.Data.Mode)
	require.Len(t, env.Data.Records, 5)
	assert.Equal(t, "Space", env.Data.Records[3].Display)
	assert.Equal(t, charclass.Of(charclass.TagUnicode, charclass.TagKorean), env.Data.Records[4].Categories)

	assert.Equal(t, 5, env.Data.Summary.Total)
	assert.Equal(t, 1, env.Data.Summary.Count(charclass.TagKorean))
	assert.Equal(t, 80.0, env.Data.Percentages["ascii"])
	assert.Equal(t, 40.0, env.Data.Percentages["alphabetic"])
	assert.Equal(t, "Total Characters", env.Data.Stats[0].Label)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAnalyze_ModeAndPolicy(t *testing.T) {
	s := newTestServer(100)

	_, env := post(t, s, `{"text":"a😀","mode":"utf16"}`)
	assert.Equal(t, analysis.ModeUTF16, env.Data.Mode)
	assert.Len(t, env.Data.Records, 3)

	_, env = post(t, s, `{"text":"한","korean_policy":"special"}`)
	assert.Equal(t, 1, env.Data.Summary.Count(charclass.TagSpecial))
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	s := newTestServer(100)

	cases := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"missing text", `{}`, "text", "required"},
		{"empty text", `{"text":""}`, "text", "required"},
		{"blank text", `{"text":"  \t\n"}`, "text", "notblank"},
		{"bad mode", `{"text":"a","mode":"grapheme"}`, "mode", "oneof"},
		{"bad policy", `{"text":"a","korean_policy":"hangul"}`, "korean_policy", "oneof"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := post(t, s, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.Len(t, env.Errors, 1)
			assert.Equal(t, tc.field, env.Errors[0].Field)
			assert.Equal(t, tc.code, env.Errors[0].Code)
		})
	}
}

func TestAnalyze_MalformedJSON(t *testing.T) {
	w, env := post(t, newTestServer(100), `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "malformed", env.Errors[0].Code)
}

func TestAnalyze_TooLong(t *testing.T) {
	s := newTestServer(3)

	// Four runes but twelve bytes: the limit counts characters.
	w, env := post(t, s, `{"text":"가나다라"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "maxrunes", env.Errors[0].Code)

	w, _ = post(t, s, `{"text":"가나다"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyze_BodyCappedBeforeDecode(t *testing.T) {
	s := newTestServer(3)

	// Unterminated JSON far past the byte cap: the cap trips before the
	// decoder reaches the missing quote.
	body := `{"text":"` + strings.Repeat("a", int(s.bodyLimit())+1)
	w, env := post(t, s, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "maxrunes", env.Errors[0].Code)

	// Escaped surrogate pairs up to the rune limit still fit.
	w, env = post(t, s, `{"text":"\ud83d\ude00\ud83d\ude00\ud83d\ude00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, env.Data.Summary.Count(charclass.TagEmoji))
}

// enableFileLogging turns on category file logging in a temp workspace and
// returns the logs directory.
func enableFileLogging(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()
	require.NoError(t, logging.Initialize(ws, config.LoggingConfig{Level: "debug", DebugMode: true}))
	t.Cleanup(func() {
		logging.CloseAll()
		_ = logging.Initialize(ws, config.LoggingConfig{})
	})
	return filepath.Join(ws, config.DirName, "logs")
}

func readCategoryLog(t *testing.T, dir string, category logging.Category) string {
	t.Helper()
	logging.CloseAll()
	files, err := filepath.Glob(filepath.Join(dir, "*_"+string(category)+".log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	return string(data)
}

func TestAnalyze_TooLongIsLogged(t *testing.T) {
	dir := enableFileLogging(t)
	s := newTestServer(2)

	w, _ := post(t, s, `{"text":"abc"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	out := readCategoryLog(t, dir, logging.CategoryAPI)
	assert.Contains(t, out, "rejected 3-rune text (limit 2)")
	assert.Contains(t, out, "warn")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(10)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(10)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(10)
	const id = "5f0c6f5e-8d2a-4a8e-9a39-3b8f5f6b2c11"

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get("X-Request-ID"))
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := New(Config{MaxInput: 100, ShutdownTimeout: time.Second}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	url := "http://" + ln.Addr().String() + "/api/v1/analyze"
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(`{"text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := New(Config{Listen: "256.0.0.1:http"}, nil)
	err := s.Run(context.Background())
	assert.Error(t, err)
}
