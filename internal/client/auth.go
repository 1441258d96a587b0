// ABOUTME: Session lifecycle endpoints: login, signup, refresh, logout
// ABOUTME: The only writers of new tokens and the only place that clears them

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"stayhub/internal/session"
)

// authData is the login/register response payload.
type authData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		Username string       `json:"username"`
		Role     session.Role `json:"role"`
	} `json:"user"`
}

func (d *authData) session() *session.Session {
	return &session.Session{
		AccessToken:  d.AccessToken,
		RefreshToken: d.RefreshToken,
		Username:     d.User.Username,
		Role:         d.User.Role,
	}
}

// Login authenticates and persists the full session on success. A
// rejected login leaves the store untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if strings.TrimSpace(email) == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "is required"}
	}

	payload := map[string]string{"email": email, "password": password}
	var data authData
	if err := c.publicJSON(ctx, http.MethodPost, "/user/login", payload, &data); err != nil {
		return nil, err
	}

	sess := data.session()
	if !sess.Complete() {
		return nil, fmt.Errorf("invalid response from server: incomplete session")
	}
	if err := c.store.Set(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

// SignupProfile is the registration form. Admin accounts are not
// self-service, so only customer and vendor are accepted.
type SignupProfile struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Phone    string       `json:"phone"`
	Address  string       `json:"address"`
	Role     session.Role `json:"role"`
}

// Validate blocks submission locally before any network call.
func (p *SignupProfile) Validate() error {
	required := []struct {
		field, value string
	}{
		{"username", p.Username},
		{"email", p.Email},
		{"password", p.Password},
		{"phone", p.Phone},
		{"address", p.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Reason: "is required"}
		}
	}
	if !strings.Contains(p.Email, "@") {
		return &ValidationError{Field: "email", Reason: "is not a valid email address"}
	}
	if p.Role != session.RoleCustomer && p.Role != session.RoleVendor {
		return &ValidationError{Field: "role", Reason: "must be customer or vendor"}
	}
	return nil
}

// Signup registers a new account and persists the returned session.
func (c *Client) Signup(ctx context.Context, profile SignupProfile) (*session.Session, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	var data authData
	if err := c.publicJSON(ctx, http.MethodPost, "/user/register", profile, &data); err != nil {
		return nil, err
	}

	sess := data.session()
	if !sess.Complete() {
		return nil, fmt.Errorf("invalid response from server: incomplete session")
	}
	if err := c.store.Set(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

// Logout clears the session unconditionally. Idempotent.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// refresh exchanges the refresh token for a new access token. Unlike
// the other endpoints the refresh response carries the token at the top
// level, not inside the data envelope.
func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	payload := map[string]string{"refreshToken": refreshToken}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/refresh", "application/json", body)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.handleErrorResponse(resp)
	}

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("invalid response from server: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("invalid response from server: empty access token")
	}
	return out.AccessToken, nil
}
