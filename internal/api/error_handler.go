package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream rejections keep their status; transient upstream failures
	// that escaped the fallback policy surface as a bad gateway. So does an
	// upstream error without a usable status (e.g. a 2xx body that failed
	// to decode): echo would render status 0 as 200.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		if ue.Transient {
			return http.StatusBadGateway, "upstream unavailable"
		}
		if ue.Status < http.StatusBadRequest {
			log.Warn().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("malformed upstream response")
			return http.StatusBadGateway, "upstream returned an invalid response"
		}
		return ue.Status, domain.ErrorMessage(err)
	}

	switch {
	case errors.Is(err, domain.ErrSessionRequired):
		return http.StatusUnauthorized, "no active session"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "session invalidated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "upstream unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
