package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_AssignsOne(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/v1/patients")

	var seen string
	err := RequestID()(func(c echo.Context) error {
		seen, _ = c.Get("request_id").(string)
		return okHandler(c)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seen == "" {
		t.Fatal("expected a generated request id")
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("response header %q does not match context id %q", rec.Header().Get(RequestIDHeader), seen)
	}
}

func TestRequestID_HonoursClientID(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/v1/doctors")
	c.Request().Header.Set(RequestIDHeader, "front-desk-7")

	err := RequestID()(okHandler)(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.Header().Get(RequestIDHeader); got != "front-desk-7" {
		t.Fatalf("expected front-desk-7, got %q", got)
	}
}

func TestLogger_EmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	c, _ := newTestContext(http.MethodGet, "/api/v1/billing/bills")

	if err := Logger(logger)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/api/v1/billing/bills"`, `"status":200`, `"level":"info"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestLogger_RejectionLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	c, _ := newTestContext(http.MethodPost, "/api/v1/billing/charges")

	err := Logger(logger)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "rejected")
	})(c)
	if err == nil {
		t.Fatal("expected handler error to propagate")
	}

	line := buf.String()
	if !strings.Contains(line, `"level":"warn"`) || !strings.Contains(line, `"status":422`) {
		t.Fatalf("expected warn line with status 422, got %s", line)
	}
}

func TestRecovery_TurnsPanicInto500(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	c, _ := newTestContext(http.MethodGet, "/api/v1/admissions")

	err := Recovery(logger)(func(c echo.Context) error {
		panic("charge master gone")
	})(c)
	if err == nil {
		t.Fatal("expected an error from the recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "charge master gone") || !strings.Contains(line, `"stack"`) {
		t.Fatalf("expected panic value and stack in log, got %s", line)
	}
}

func TestRecovery_LeavesCleanRequestsAlone(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health")

	if err := Recovery(zerolog.Nop())(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
