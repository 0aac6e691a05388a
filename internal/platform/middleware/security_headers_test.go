package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func applyHeaders(t *testing.T, handler echo.HandlerFunc, method, path string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, SecurityHeaders()(handler)(c)
}

func TestSecurityHeaders_StampsFullSet(t *testing.T) {
	rec, err := applyHeaders(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, http.MethodGet, "/api/v1/patients")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, want := range apiHeaders {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("header %s: got %q, want %q", name, got, want)
		}
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("billing responses must not be cacheable")
	}
}

func TestSecurityHeaders_KeptOnRejectedOperation(t *testing.T) {
	rec, err := applyHeaders(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "rejected")
	}, http.MethodPost, "/api/v1/billing/bills")

	if err == nil {
		t.Fatal("expected handler error to propagate")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("headers must be set before the handler runs")
	}
}
