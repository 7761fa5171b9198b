// Package client provides a Go client for the userhub API plus an auth
// state cache with route-guard decisions for embedding applications.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"userhub/web/entity"
	"userhub/web/service"
)

// Client talks to a userhub server. A cookie jar carries the session
// cookie on every request, the equivalent of credentials:include. The
// returned errors cover only the infrastructure channel; business failures
// arrive inside the payload with Success=false.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL (scheme://host[:port][/base]).
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, username, password string) (*entity.AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	return c.doAuthResult(ctx, http.MethodPost, "/api/auth/login", body)
}

// LoginWithTwoFactor authenticates with a TOTP code.
func (c *Client) LoginWithTwoFactor(ctx context.Context, username, password, code string) (*entity.AuthResult, error) {
	body := map[string]string{"username": username, "password": password, "twoFactorCode": code}
	return c.doAuthResult(ctx, http.MethodPost, "/api/auth/login", body)
}

// Logout destroys the server-side session. Idempotent.
func (c *Client) Logout(ctx context.Context) (*entity.AuthResult, error) {
	return c.doAuthResult(ctx, http.MethodPost, "/api/auth/logout", nil)
}

// Me returns the current user, or a success payload with no user when the
// session is anonymous.
func (c *Client) Me(ctx context.Context) (*entity.AuthResult, error) {
	return c.doAuthResult(ctx, http.MethodGet, "/api/auth/me", nil)
}

// Register creates a user. Requires a staff-level session.
func (c *Client) Register(ctx context.Context, input service.RegisterInput) (*entity.AuthResult, error) {
	return c.doAuthResult(ctx, http.MethodPost, "/api/admin/users", input)
}

// AllUsers lists all non-admin users. Requires a staff-level session.
func (c *Client) AllUsers(ctx context.Context) (*entity.UserList, error) {
	var out entity.UserList
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to the given user.
func (c *Client) UpdateUser(ctx context.Context, id int, input service.UpdateUserInput) (*entity.AuthResult, error) {
	return c.doAuthResult(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d", id), input)
}

func (c *Client) doAuthResult(ctx context.Context, method, path string, body any) (*entity.AuthResult, error) {
	var out entity.AuthResult
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("server error: %s", resp.Status)
	}

	// 401/403 still carry a structured body; decode it rather than failing.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
