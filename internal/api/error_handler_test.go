package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.GET("/x", func(c echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestErrorHandler_DecodeFailureIsBadGateway(t *testing.T) {
	// A 2xx upstream body that fails to decode yields an UpstreamError with
	// no status. That must never surface as a 200 with an error envelope.
	rec := serveError(t, &domain.UpstreamError{Message: "decode response: invalid character"})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error envelope, got %q", rec.Body.String())
	}
}

func TestErrorHandler_TransientIsBadGateway(t *testing.T) {
	rec := serveError(t, &domain.UpstreamError{Transient: true, Message: "connection refused"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestErrorHandler_UpstreamRejectionKeepsStatus(t *testing.T) {
	rec := serveError(t, &domain.UpstreamError{Status: http.StatusUnprocessableEntity, Message: "time_horizon not supported"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "time_horizon not supported" {
		t.Fatalf("upstream message must survive, got %q", resp["error"])
	}
}

func TestErrorHandler_AuthSentinels(t *testing.T) {
	if rec := serveError(t, &domain.UpstreamError{Status: http.StatusUnauthorized, Message: "token expired"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("401 upstream: expected 401, got %d", rec.Code)
	}
	if rec := serveError(t, domain.ErrForbidden); rec.Code != http.StatusForbidden {
		t.Fatalf("forbidden sentinel: expected 403, got %d", rec.Code)
	}
	if rec := serveError(t, domain.ErrSessionRequired); rec.Code != http.StatusUnauthorized {
		t.Fatalf("session sentinel: expected 401, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedIsInternal(t *testing.T) {
	rec := serveError(t, echo.NewHTTPError(http.StatusNotFound, "not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("echo errors pass through, got %d", rec.Code)
	}

	rec = serveError(t, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal cause must not leak, got %q", resp["error"])
	}
}
