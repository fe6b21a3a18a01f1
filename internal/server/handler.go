package server

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"charscope/internal/analysis"
	"charscope/internal/charclass"
	"charscope/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// slowAnalysis is the duration above which a request's analysis is logged
// as a warning.
const slowAnalysis = 250 * time.Millisecond

// AnalyzeReq is the body of POST /api/v1/analyze.
type AnalyzeReq struct {
	Text         string `json:"text" binding:"required,notblank"`
	Mode         string `json:"mode" binding:"omitempty,oneof=codepoint utf16"`
	KoreanPolicy string `json:"korean_policy" binding:"omitempty,oneof=untagged special"`
}

// AnalyzeRes is the data of a successful analyze call.
type AnalyzeRes struct {
	ID          string             `json:"id"`
	Mode        analysis.Mode      `json:"mode"`
	Records     []analysis.Record  `json:"records"`
	Summary     analysis.Summary   `json:"summary"`
	Percentages map[string]float64 `json:"percentages"`
	Stats       []analysis.Stat    `json:"stats"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, okRes(gin.H{"status": "ok"}))
}

// bodyLimit bounds the request body. Every rune of text may arrive as an
// escaped surrogate pair (12 bytes); the rest covers the other fields.
func (s *Server) bodyLimit() int64 {
	return int64(s.cfg.MaxInput)*12 + 4096
}

func (s *Server) tooLong(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, errRes(Err{
		Field:   "text",
		Code:    "maxrunes",
		Message: codeMessage("maxrunes", itoa(s.cfg.MaxInput)),
	}))
}

func (s *Server) analyze(c *gin.Context) {
	reqID := c.GetString(requestIDKey)
	log := logging.WithRequestID(logging.CategoryAPI, reqID)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.bodyLimit())

	var req AnalyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			logging.APIWarn("[%s] rejected body over %d bytes", reqID, tooBig.Limit)
			s.tooLong(c)
			return
		}
		log.Warn("rejected analyze request: %v", err)
		c.JSON(http.StatusBadRequest, errRes(validationErrs(err)...))
		return
	}
	if n := utf8.RuneCountInString(req.Text); n > s.cfg.MaxInput {
		logging.APIWarn("[%s] rejected %d-rune text (limit %d)", reqID, n, s.cfg.MaxInput)
		s.tooLong(c)
		return
	}

	opts := s.cfg.Defaults
	if req.Mode != "" {
		opts.Mode = analysis.Mode(req.Mode)
	}
	if req.KoreanPolicy != "" {
		opts.KoreanPolicy = charclass.KoreanPolicy(req.KoreanPolicy)
	}

	timer := logging.StartTimer(logging.CategoryAPI, "analyze "+reqID)
	res := analysis.New(opts).Analyze(req.Text)
	timer.StopWithThreshold(slowAnalysis)
	stats, err := res.Summary.Stats()
	if err != nil {
		// Unreachable for validated input.
		c.JSON(http.StatusBadRequest, errRes(Err{Field: "text", Code: "notblank", Message: err.Error()}))
		return
	}

	pct := make(map[string]float64, len(charclass.AllTags))
	for _, t := range charclass.AllTags {
		pct[t.String()], _ = res.Summary.Percent(t)
	}

	log.Info("analyzed %d units in %s mode", res.Summary.Total, res.Mode)
	c.JSON(http.StatusOK, okRes(AnalyzeRes{
		ID:          uuid.NewString(),
		Mode:        res.Mode,
		Records:     res.Records,
		Summary:     res.Summary,
		Percentages: pct,
		Stats:       stats,
	}))
}
