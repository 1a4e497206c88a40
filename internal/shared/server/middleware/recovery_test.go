package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shared/telemetry"
)

func TestRecoveryReturnsErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := telemetry.L()
	telemetry.SetLogger(zap.New(core))
	t.Cleanup(func() { telemetry.SetLogger(prev) })

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) {
		respond.SetScreeningID(c, "scr-9")
		panic("boom")
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var payload respond.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != "internal_error" {
		t.Fatalf("unexpected code %q", payload.Error.Code)
	}

	entries := logs.FilterMessage("http.panic").All()
	if len(entries) != 1 {
		t.Fatalf("expected one http.panic entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["screening_id"]; got != "scr-9" {
		t.Fatalf("unexpected screening_id %v", got)
	}
}

func TestRequestIDValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "caller id reused", header: "abc-123", reuse: true},
		{name: "missing id generated", header: "", reuse: false},
		{name: "unsafe id replaced", header: "bad id\r\n", reuse: false},
		{name: "oversized id replaced", header: strings.Repeat("a", 200), reuse: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header["X-Request-Id"] = []string{tt.header}
			}
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			got := resp.Header().Get("X-Request-Id")
			if got == "" || got != resp.Body.String() {
				t.Fatalf("header %q and context id %q differ", got, resp.Body.String())
			}
			if tt.reuse && got != tt.header {
				t.Fatalf("expected %q to be reused, got %q", tt.header, got)
			}
			if !tt.reuse && got == tt.header {
				t.Fatalf("expected a generated id, got %q", got)
			}
		})
	}
}
