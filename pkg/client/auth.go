package client

import (
	"context"
	"net/http"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", credentials{Email: email, Password: password}, &out, nil); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account and returns a session token for it.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/register", credentials{Email: email, Password: password}, &out, nil); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Logout invalidates the current session token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}
