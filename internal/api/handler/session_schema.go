package handler

import "github.com/esgview/admin-gateway/internal/core/domain"

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username"  validate:"required,min=3"`
	Password string `json:"password"  validate:"required,min=6"`
	Email    string `json:"email"     validate:"omitempty,email"`
	FullName string `json:"full_name"`
}

type sessionResponse struct {
	State         string              `json:"state"`
	Authenticated bool                `json:"authenticated"`
	User          *domain.UserProfile `json:"user,omitempty"`
}

type clientListResponse struct {
	Clients []domain.UserProfile `json:"clients"`
	Count   int                  `json:"count"`
}

type messageResponse struct {
	Message string `json:"message"`
}
