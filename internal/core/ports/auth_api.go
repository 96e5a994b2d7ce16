package ports

import (
	"context"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

// Credentials is what the platform's auth endpoints return on a successful
// login or signup.
type Credentials struct {
	Token   string
	UserID  string
	Role    string
	Message string
}

// SignupInput carries a registration payload. Role and portfolio access are
// not caller-settable: new accounts always start as clients with no access.
type SignupInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// AuthAPI is the upstream authentication surface consumed by the session
// manager.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*Credentials, error)
	Signup(ctx context.Context, input SignupInput) (*Credentials, error)
	Profile(ctx context.Context, token string) (*domain.UserProfile, error)
	Roster(ctx context.Context, token string) ([]domain.UserProfile, error)
}
