// ABOUTME: HTTP client for the StayHub marketplace API
// ABOUTME: Wraps every call with bearer auth and a single refresh-and-retry

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/session"
)

// ErrSessionExpired is the terminal condition after a failed token
// refresh or a 401 that survives the retry. Callers must treat the
// session as unauthenticated and log out.
var ErrSessionExpired = errors.New("session expired, please log in again")

// ErrNotLoggedIn is returned when a protected call is attempted with no
// session at all. The role gate should prevent this from happening.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a well-formed rejection from the server, carrying the
// server-provided message for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}

// ValidationError reports a client-side rejection raised before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// envelope is the API's JSON response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Client is the API client for the StayHub marketplace backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
}

// New creates a client against the given base URL, using the store for
// session reads and refreshed-token writes.
func New(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store: store,
	}
}

// newRequest builds a request with a replayable body so a refreshed
// call can be resent, and tags it with a request ID for support logs.
func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body []byte) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// doAuthed performs one logical protected operation: attach the bearer
// token, send, and on a 401 refresh the access token and resend the
// original request exactly once. A second 401 is final. Only the access
// token is ever rewritten; refresh token and role stay untouched.
func (c *Client) doAuthed(req *http.Request) (*http.Response, error) {
	sess, err := c.store.Get()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(req.Context(), err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	fresh, err := c.refresh(req.Context(), sess.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w (refresh failed: %v)", ErrSessionExpired, err)
	}
	if err := c.store.UpdateAccessToken(fresh); err != nil {
		return nil, fmt.Errorf("store refreshed token: %w", err)
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		retry.Body = rc
	}
	retry.Header.Set("Authorization", "Bearer "+fresh)

	resp, err = c.httpClient.Do(retry)
	if err != nil {
		return nil, c.handleRequestError(req.Context(), err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrSessionExpired
	}
	return resp, nil
}

// authedJSON runs a protected JSON call end to end and decodes the
// envelope data into out (out may be nil).
func (c *Client) authedJSON(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	contentType := ""
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	resp, err := c.doAuthed(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.decode(resp, out)
}

// publicJSON runs an unauthenticated JSON call.
func (c *Client) publicJSON(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	contentType := ""
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()
	return c.decode(resp, out)
}

// decode unwraps the response envelope or converts it to an APIError.
func (c *Client) decode(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot reach server at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// Ping checks connectivity by hitting the public listing endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/list", "", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}
	return nil
}
