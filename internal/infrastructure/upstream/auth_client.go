package upstream

import (
	"context"
	"net/url"

	"github.com/esgview/admin-gateway/internal/core/domain"
	"github.com/esgview/admin-gateway/internal/core/ports"
)

// AuthClient implements ports.AuthAPI against the platform's auth endpoints.
type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	Message     string `json:"message"`
}

func (r authResponse) credentials() *ports.Credentials {
	return &ports.Credentials{
		Token:   r.AccessToken,
		UserID:  r.UserID,
		Role:    r.Role,
		Message: r.Message,
	}
}

// Login posts form-encoded credentials, matching the platform's OAuth2-style
// token endpoint.
func (c *AuthClient) Login(ctx context.Context, username, password string) (*ports.Credentials, error) {
	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	var resp authResponse
	if err := c.client.postForm(ctx, "/api/auth/login", values, &resp); err != nil {
		return nil, err
	}
	return resp.credentials(), nil
}

type signupRequest struct {
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	Email           string   `json:"email,omitempty"`
	FullName        string   `json:"full_name,omitempty"`
	Role            string   `json:"role"`
	PortfolioAccess []string `json:"portfolio_access"`
}

// Signup registers a new account. The role and portfolio access are fixed
// gateway-side: every new identity is a client with no access.
func (c *AuthClient) Signup(ctx context.Context, input ports.SignupInput) (*ports.Credentials, error) {
	payload := signupRequest{
		Username:        input.Username,
		Password:        input.Password,
		Email:           input.Email,
		FullName:        input.FullName,
		Role:            domain.RoleClient,
		PortfolioAccess: []string{},
	}

	var resp authResponse
	if err := c.client.postJSON(ctx, "", "/api/auth/signup", payload, &resp, c.client.requestTimeout); err != nil {
		return nil, err
	}
	return resp.credentials(), nil
}

// Profile fetches the authoritative identity for the token.
func (c *AuthClient) Profile(ctx context.Context, token string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.client.getJSON(ctx, token, "/api/auth/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Roster fetches the admin-only client list.
func (c *AuthClient) Roster(ctx context.Context, token string) ([]domain.UserProfile, error) {
	var resp struct {
		Users []domain.UserProfile `json:"users"`
	}
	if err := c.client.getJSON(ctx, token, "/api/auth/admin/users", &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []domain.UserProfile{}, nil
	}
	return resp.Users, nil
}
