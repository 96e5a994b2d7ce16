package ports

import (
	"context"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

// AuthResult is the outcome of a login or signup attempt. Failures are
// surfaced here rather than as Go errors: the session manager never fails
// out of these operations, it reports.
type AuthResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	// Transient marks a failure where no credential was actually rejected
	// (platform unreachable, timed out, or 5xx). Transport code uses it to
	// pick a status; it is not part of the body contract.
	Transient bool `json:"-"`
}

// SessionService manages the single logical session of the gateway.
type SessionService interface {
	// Login authenticates against the platform. On failure the prior
	// session state is left untouched.
	Login(ctx context.Context, username, password string) AuthResult
	// Signup registers a new client account and opens a session for it.
	Signup(ctx context.Context, input SignupInput) AuthResult
	// RefreshProfile fetches the authoritative identity. A 401/403
	// invalidates the session (fail-closed) and is returned; transient
	// failures are absorbed by serving the persisted snapshot.
	RefreshProfile(ctx context.Context) error
	// RefreshRoster fetches the admin client list. Non-admin sessions
	// never reach upstream and receive their self-only view.
	RefreshRoster(ctx context.Context) ([]domain.UserProfile, error)
	// AccessibleClients is the scoping derivation UI code relies on:
	// full roster for admins, own record only otherwise.
	AccessibleClients() []domain.UserProfile
	// Logout clears token, identity and persisted snapshot. Idempotent.
	Logout(ctx context.Context)
	// Snapshot returns the read-only session view.
	Snapshot() domain.Session
}

// TokenSource exposes the current bearer token to outbound clients.
// An empty string means the session is anonymous.
type TokenSource interface {
	Token() string
}
