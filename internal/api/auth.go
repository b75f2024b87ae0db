package api

import (
	"context"
	"fmt"

	"github.com/me/unishop/pkg/model"
)

// ExchangeGoogleCredential trades an external identity assertion for a
// session token and user profile.
func (c *Client) ExchangeGoogleCredential(ctx context.Context, credential string) (string, *model.UserProfile, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "POST", "/api/auth/google", "", model.AuthRequest{Credential: credential}, &resp)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", model.ErrAuthenticationFailed, err)
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		if resp.Error != nil {
			return "", nil, fmt.Errorf("%w: %s", model.ErrAuthenticationFailed, resp.Error.Message)
		}
		return "", nil, model.ErrAuthenticationFailed
	}
	return resp.Token, resp.User, nil
}

// VerifySession asks the server whether the token is still valid, returning
// the current server-side user profile.
func (c *Client) VerifySession(ctx context.Context, token string) (*model.UserProfile, error) {
	var resp model.VerifyResponse
	if err := c.do(ctx, "GET", "/api/auth/verify", token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("%w: malformed verify response", model.ErrSessionInvalid)
	}
	return resp.User, nil
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	var resp model.RefreshResponse
	if err := c.do(ctx, "POST", "/api/auth/refresh", token, nil, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.Token == "" {
		return "", fmt.Errorf("%w: malformed refresh response", model.ErrSessionInvalid)
	}
	return resp.Token, nil
}

// Logout tells the server to invalidate the token. Callers treat this as
// best-effort: local sign-out proceeds regardless of the result.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "POST", "/api/auth/logout", token, nil, nil)
}
