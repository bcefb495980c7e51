// Package client is a Go client for the auth API that keeps its signed-in
// state in an explicit Session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrSignedOut is returned by calls that need a session token.
var ErrSignedOut = errors.New("not signed in")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// SignupInput is the body of a signup call. Role may be empty.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role,omitempty"`
}

// ProfileInput is the body of a profile update. Nil fields are omitted.
type ProfileInput struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Client calls the auth API on behalf of one Session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a Client. A nil httpClient uses a client with a 10s timeout.
func New(baseURL string, session *Session, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if session == nil {
		session = &Session{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session returns the client's session.
func (c *Client) Session() *Session {
	return c.session
}

// Signup creates an account and signs the session in.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", in, false, &out); err != nil {
		return nil, err
	}
	if err := c.session.Update(out.Token, &out.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &out.User, nil
}

// Signin authenticates and signs the session in.
func (c *Client) Signin(ctx context.Context, email, password string) (*User, error) {
	in := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", in, false, &out); err != nil {
		return nil, err
	}
	if err := c.session.Update(out.Token, &out.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &out.User, nil
}

// Profile fetches the signed-in user's profile. A 401 ends the session.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the signed-in user's profile.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPatch, "/api/auth/profile", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session locally. Tokens are not revocable server-side.
func (c *Client) Logout() error {
	return c.session.Close()
}

func (c *Client) do(ctx context.Context, method, path string, in any, authed bool, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.session.Token()
		if token == "" {
			return ErrSignedOut
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if authed && resp.StatusCode == http.StatusUnauthorized {
			_ = c.session.Close()
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
