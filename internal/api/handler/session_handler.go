package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esgview/admin-gateway/internal/api/metrics"
	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// SessionHandler exposes the gateway's session lifecycle over HTTP.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login opens a session against the platform.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.AuthResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  ports.AuthResult
// @Failure      502   {object}  ports.AuthResult
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if !result.Success {
		// A platform outage is not a credential rejection; give it a
		// gateway status instead of a 401.
		if result.Transient {
			metrics.SessionLoginsTotal.WithLabelValues("unavailable").Inc()
			return c.JSON(http.StatusBadGateway, result)
		}
		metrics.SessionLoginsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusUnauthorized, result)
	}

	metrics.SessionLoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, result)
}

// Signup registers a new client account and opens a session for it.
//
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  ports.AuthResult
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  ports.AuthResult
// @Router       /session/signup [post]
func (h *SessionHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result := h.sessions.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if !result.Success {
		if result.Transient {
			return c.JSON(http.StatusBadGateway, result)
		}
		return c.JSON(http.StatusBadRequest, result)
	}

	return c.JSON(http.StatusCreated, result)
}

// Logout tears down the session. Idempotent: logging out of an anonymous
// session is a no-op that still returns 200.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if h.sessions.Snapshot().Authenticated {
		metrics.SessionInvalidationsTotal.WithLabelValues("logout").Inc()
	}
	h.sessions.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Refresh re-fetches the authoritative identity for the current session.
//
// @Summary      Refresh the session profile
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	if err := h.sessions.RefreshProfile(c.Request().Context()); err != nil {
		if domain.IsAuthError(err) {
			metrics.SessionInvalidationsTotal.WithLabelValues("token_rejected").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// Current returns the session view. Unlike the gated routes this never
// rejects: an anonymous session is a valid answer.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// Clients lists the client organizations visible to the session.
//
// @Summary      Accessible clients
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientListResponse
// @Failure      401  {object}  errorResponse
// @Router       /session/clients [get]
func (h *SessionHandler) Clients(c echo.Context) error {
	clients := h.sessions.AccessibleClients()
	return c.JSON(http.StatusOK, clientListResponse{Clients: clients, Count: len(clients)})
}

// Roster forces a roster refresh from the platform. Admin only.
//
// @Summary      Refresh the client roster
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /session/roster [get]
func (h *SessionHandler) Roster(c echo.Context) error {
	roster, err := h.sessions.RefreshRoster(c.Request().Context())
	if err != nil {
		if domain.IsAuthError(err) {
			metrics.SessionInvalidationsTotal.WithLabelValues("token_rejected").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{Clients: roster, Count: len(roster)})
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		State:         string(s.State),
		Authenticated: s.Authenticated,
		User:          s.User,
	}
}
