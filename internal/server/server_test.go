package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/logger"
	"github.com/iliyamo/leetcode-tracker/internal/middleware"
)

func TestNewEchoUnknownRoute(t *testing.T) {
	var buf bytes.Buffer
	e := NewEcho(logger.NewWithWriter("prod", "info", &buf))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Route not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected a request id header")
	}
	if !strings.Contains(buf.String(), `"status":404`) {
		t.Fatalf("expected a request log line, got %q", buf.String())
	}
}

func TestNewEchoRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	e := NewEcho(logger.NewWithWriter("prod", "info", &buf))
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked to client: %s", rec.Body.String())
	}
}
