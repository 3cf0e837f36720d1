package apiclient

import (
	"context"
	"net/http"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

const resourceAuth = "auth"

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	var pair domain.TokenPair
	err := c.do(ctx, call{
		op: "login", resource: resourceAuth, method: http.MethodPost, path: "auth/login/",
		body: creds, out: &pair, classify: credentialFailure, credentialExchange: true,
	})
	return pair, err
}

// Register creates an account. Username collisions come back as ErrValidation.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.RegisterAck, error) {
	var ack domain.RegisterAck
	err := c.do(ctx, call{
		op: "register", resource: resourceAuth, method: http.MethodPost, path: "auth/register/",
		body: reg, out: &ack, classify: inputFailure, credentialExchange: true,
	})
	return ack, err
}

// CurrentUser returns the owner of the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		op: "get current user", resource: resourceAuth, method: http.MethodGet, path: "auth/me/",
		out: &user, classify: credentialFailure,
	})
	return user, err
}

// UpdateProfile edits the current user's names, email and optionally password.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		op: "update profile", resource: resourceAuth, method: http.MethodPut, path: "auth/profile/",
		body: update, out: &user, classify: profileFailure,
	})
	return user, err
}

// RefreshToken exchanges a refresh token for a new access token. The session
// never calls it: stored refresh tokens are kept but not rotated.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var out struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, call{
		op: "refresh token", resource: resourceAuth, method: http.MethodPost, path: "auth/refresh/",
		body: map[string]string{"refresh": refresh}, out: &out, classify: credentialFailure, credentialExchange: true,
	})
	return out.Access, err
}
