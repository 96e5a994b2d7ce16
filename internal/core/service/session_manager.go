package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

const defaultRestoreTimeout = 5 * time.Second

// SessionManager owns the single logical session of the gateway: token
// lifecycle, current identity, and the derived accessible-client list.
// Safe for concurrent use by HTTP handlers.
type SessionManager struct {
	api            ports.AuthAPI
	store          ports.SnapshotStore
	restoreTimeout time.Duration
	logger         zerolog.Logger

	mu     sync.RWMutex
	state  domain.SessionState
	token  string
	user   *domain.UserProfile
	roster []domain.UserProfile
}

func NewSessionManager(api ports.AuthAPI, store ports.SnapshotStore, restoreTimeout time.Duration, logger zerolog.Logger) *SessionManager {
	if restoreTimeout <= 0 {
		restoreTimeout = defaultRestoreTimeout
	}
	return &SessionManager{
		api:            api,
		store:          store,
		restoreTimeout: restoreTimeout,
		logger:         logger,
		state:          domain.StateAnonymous,
	}
}

// Restore seeds the session from the persisted token at startup. A visibly
// expired or unparseable token is discarded. The follow-up profile refresh
// runs under the restore bound so a hung upstream cannot stall startup; on
// expiry the session stays pending with the snapshot identity.
func (m *SessionManager) Restore(ctx context.Context) {
	token, err := m.store.LoadToken(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("session restore: token load failed")
		return
	}
	if token == "" {
		return
	}

	claims, ok := parseClaims(token)
	if !ok {
		m.logger.Info().Msg("session restore: discarding invalid persisted token")
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Warn().Err(err).Msg("snapshot clear failed")
		}
		return
	}

	provisional := m.provisionalFromClaims(ctx, claims)

	m.mu.Lock()
	m.token = token
	m.user = provisional
	m.setStateLocked(domain.StatePendingProfile)
	m.mu.Unlock()

	refreshCtx, cancel := context.WithTimeout(ctx, m.restoreTimeout)
	defer cancel()
	if err := m.RefreshProfile(refreshCtx); err != nil {
		m.logger.Info().Err(err).Msg("session restore: profile refresh did not complete")
	}
}

// Login authenticates against the platform. Failures leave any prior
// session untouched and are reported in the result, never returned as an
// error.
func (m *SessionManager) Login(ctx context.Context, username, password string) ports.AuthResult {
	if username == "" || password == "" {
		return ports.AuthResult{Success: false, Error: "username and password are required"}
	}

	creds, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.logger.Info().Err(err).Str("username", username).Msg("login failed")
		return ports.AuthResult{Success: false, Error: domain.ErrorMessage(err), Transient: domain.IsTransient(err)}
	}

	provisional := &domain.UserProfile{
		ID:              creds.UserID,
		Username:        username,
		Role:            creds.Role,
		PortfolioAccess: domain.PortfolioAccessForUsername(username),
		Quality:         domain.QualityProvisional,
	}

	m.commit(ctx, creds.Token, provisional)
	m.logger.Info().Str("username", username).Str("role", creds.Role).Msg("login succeeded")

	// Roster and profile fetches only run once the token write above is
	// visible. Only a rejection of the just-issued token fails the login;
	// anything else is absorbed.
	if err := m.RefreshProfile(ctx); err != nil {
		if domain.IsAuthError(err) {
			return ports.AuthResult{Success: false, Error: domain.ErrorMessage(err)}
		}
		m.logger.Warn().Err(err).Msg("post-login profile refresh failed")
	}
	if creds.Role == domain.RoleAdmin {
		_, _ = m.RefreshRoster(ctx)
	}

	return ports.AuthResult{Success: true, Role: creds.Role}
}

// Signup registers a new account. New identities always start as clients
// with zero portfolio access; an admin grants access later.
func (m *SessionManager) Signup(ctx context.Context, input ports.SignupInput) ports.AuthResult {
	if input.Username == "" || input.Password == "" {
		return ports.AuthResult{Success: false, Error: "username and password are required"}
	}

	creds, err := m.api.Signup(ctx, input)
	if err != nil {
		m.logger.Info().Err(err).Str("username", input.Username).Msg("signup failed")
		return ports.AuthResult{Success: false, Error: domain.ErrorMessage(err), Transient: domain.IsTransient(err)}
	}

	provisional := &domain.UserProfile{
		ID:              creds.UserID,
		Username:        input.Username,
		FullName:        input.FullName,
		Email:           input.Email,
		Role:            creds.Role,
		PortfolioAccess: []string{},
		Quality:         domain.QualityProvisional,
	}

	m.commit(ctx, creds.Token, provisional)
	m.logger.Info().Str("username", input.Username).Msg("signup succeeded")

	message := creds.Message
	if message == "" {
		message = "Welcome " + input.FullName + "! Your account has been created."
	}
	return ports.AuthResult{Success: true, Role: creds.Role, Message: message}
}

// RefreshProfile fetches the authoritative identity for the current token.
// 401/403 invalidate the session immediately (fail-closed). Transient
// failures are absorbed: the persisted snapshot is served when present,
// otherwise the provisional identity stands.
func (m *SessionManager) RefreshProfile(ctx context.Context) error {
	token := m.Token()
	if token == "" {
		return domain.ErrSessionRequired
	}

	profile, err := m.api.Profile(ctx, token)
	if err != nil {
		if domain.IsAuthError(err) {
			m.logger.Info().Msg("profile refresh rejected, invalidating session")
			m.invalidate(ctx)
			return err
		}
		if domain.IsTransient(err) {
			m.softFailProfile(ctx, err)
			return nil
		}
		return err
	}

	profile.Quality = domain.QualityConfirmed

	m.mu.Lock()
	m.user = profile
	m.setStateLocked(domain.StateAuthenticated)
	m.mu.Unlock()

	if err := m.store.SaveProfile(ctx, profile); err != nil {
		m.logger.Warn().Err(err).Msg("profile snapshot write failed")
	}
	return nil
}

// RefreshRoster fetches the full client list for an admin session. Non-admin
// sessions never reach upstream and get their self-only view. A transient
// upstream failure yields the seeded fallback roster.
func (m *SessionManager) RefreshRoster(ctx context.Context) ([]domain.UserProfile, error) {
	m.mu.RLock()
	token := m.token
	isAdmin := m.user != nil && m.user.Role == domain.RoleAdmin
	m.mu.RUnlock()

	if token == "" {
		return nil, domain.ErrSessionRequired
	}
	if !isAdmin {
		return m.AccessibleClients(), nil
	}

	roster, err := m.api.Roster(ctx, token)
	if err != nil {
		if domain.IsAuthError(err) {
			m.logger.Info().Msg("roster refresh rejected, invalidating session")
			m.invalidate(ctx)
			return nil, err
		}
		if domain.IsTransient(err) {
			m.logger.Warn().Err(err).Msg("roster refresh unavailable, serving seeded fallback")
			roster = domain.SeededRoster()
		} else {
			return nil, err
		}
	}

	m.mu.Lock()
	m.roster = roster
	m.mu.Unlock()
	return cloneRoster(roster), nil
}

// AccessibleClients is the access-scoping derivation: full roster for an
// admin identity, the identity's own record otherwise, empty when unknown.
func (m *SessionManager) AccessibleClients() []domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return []domain.UserProfile{}
	}
	if m.user.Role == domain.RoleAdmin {
		return cloneRoster(m.roster)
	}
	return []domain.UserProfile{*m.user.Clone()}
}

// Logout clears token, identity and the persisted snapshot. Idempotent.
func (m *SessionManager) Logout(ctx context.Context) {
	m.invalidate(ctx)
	m.logger.Info().Msg("session closed")
}

// Snapshot returns the read-only view of the current session.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.Session{
		State:         m.state,
		Authenticated: m.token != "",
		User:          m.user.Clone(),
		Token:         m.token,
	}
}

// Token implements ports.TokenSource for outbound clients.
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// commit installs a fresh token and provisional identity, then persists
// both entries. Persistence failures are logged, not fatal: the in-memory
// session is already live.
func (m *SessionManager) commit(ctx context.Context, token string, user *domain.UserProfile) {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.roster = nil
	m.setStateLocked(domain.StatePendingProfile)
	m.mu.Unlock()

	if err := m.store.SaveToken(ctx, token); err != nil {
		m.logger.Warn().Err(err).Msg("token snapshot write failed")
	}
	if err := m.store.SaveProfile(ctx, user); err != nil {
		m.logger.Warn().Err(err).Msg("profile snapshot write failed")
	}
}

func (m *SessionManager) softFailProfile(ctx context.Context, cause error) {
	snap, err := m.store.LoadProfile(ctx)
	if err != nil || snap == nil {
		m.logger.Warn().Err(cause).Msg("profile refresh unavailable, keeping provisional identity")
		return
	}

	m.mu.Lock()
	m.user = snap
	m.setStateLocked(domain.StateAuthenticated)
	m.mu.Unlock()
	m.logger.Warn().Err(cause).Msg("profile refresh unavailable, serving persisted snapshot")
}

func (m *SessionManager) invalidate(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.roster = nil
	m.setStateLocked(domain.StateAnonymous)
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("snapshot clear failed")
	}
}

// setStateLocked records a transition; callers hold m.mu. Violations of the
// documented state machine are logged, not blocked.
func (m *SessionManager) setStateLocked(next domain.SessionState) {
	if m.state != next && !m.state.CanTransitionTo(next) {
		m.logger.Warn().
			Str("from", string(m.state)).
			Str("to", string(next)).
			Msg("unexpected session transition")
	}
	m.state = next
}

// provisionalFromClaims rebuilds a best-effort identity after a restart:
// the persisted snapshot when one exists, otherwise whatever the token
// claims carry.
func (m *SessionManager) provisionalFromClaims(ctx context.Context, claims jwt.MapClaims) *domain.UserProfile {
	if snap, err := m.store.LoadProfile(ctx); err == nil && snap != nil {
		return snap
	}

	username, _ := claims["username"].(string)
	if username == "" {
		username, _ = claims["sub"].(string)
	}
	role, _ := claims["role"].(string)
	return &domain.UserProfile{
		Username:        username,
		Role:            role,
		PortfolioAccess: domain.PortfolioAccessForUsername(username),
		Quality:         domain.QualityProvisional,
	}
}

// parseClaims decodes the token claims without signature verification; the
// gateway holds no signing secret, verification stays upstream. Returns
// false for unparseable or visibly expired tokens.
func parseClaims(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, false
	}
	if exp != nil && exp.Before(time.Now()) {
		return nil, false
	}
	return claims, true
}

func cloneRoster(roster []domain.UserProfile) []domain.UserProfile {
	if roster == nil {
		return []domain.UserProfile{}
	}
	out := make([]domain.UserProfile, len(roster))
	for i := range roster {
		out[i] = *roster[i].Clone()
	}
	return out
}
