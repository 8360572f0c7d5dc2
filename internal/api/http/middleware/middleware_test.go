package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	httpctx "github.com/dtroode/interview-coach/internal/api/http/context"
	"github.com/dtroode/interview-coach/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "keeps client id", incoming: "client-42", wantSame: true},
		{name: "generates when missing"},
		{name: "replaces oversized id", incoming: strings.Repeat("x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := httpctx.NewManager()
			var seen string

			r := gin.New()
			r.Use(NewRequestID(cm).Handle)
			r.GET("/", func(c *gin.Context) {
				seen, _ = cm.GetRequestIDFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, seen)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
			}
		})
	}
}

func TestLogging_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
		wantMsg   string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "level=INFO", wantMsg: "HTTP request completed"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "level=WARN", wantMsg: "HTTP request rejected"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "level=ERROR", wantMsg: "HTTP request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			cm := httpctx.NewManager()

			r := gin.New()
			r.Use(NewRequestID(cm).Handle, NewLogging(cm, logger.NewWithWriter(0, &buf)).Handle)
			r.GET("/api/thing", func(c *gin.Context) { c.Status(tt.status) })

			req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
			req.Header.Set(RequestIDHeader, "req-7")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			out := buf.String()
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, tt.wantMsg)
			assert.Contains(t, out, "path=/api/thing")
			assert.Contains(t, out, "request_id=req-7")
			assert.Contains(t, out, fmt.Sprintf("status=%d", tt.status))
		})
	}
}
