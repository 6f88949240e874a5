// Package api is a thin JSON client for the IdeaHub REST backend. It does no
// caching and no retries; every retry is a user-initiated repeat action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ideahub/internal/model"
)

// APIError carries the server's error message for a rejected request.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Client calls the REST API at a fixed base path. The token func supplies the
// current bearer token and may return "" for anonymous calls.
type Client struct {
	base  string
	http  *http.Client
	token func() string
	renew func(ctx context.Context) bool
}

// New builds a Client for the given base URL, e.g. "http://localhost:5000/api".
func New(base string, token func() string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: 15 * time.Second},
		token: token,
	}
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         model.User `json:"user"`
}

// RegisterInput is the payload for creating a user.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// OnUnauthorized installs a hook invoked when a request is rejected with 401.
// Returning true replays the request once with the (presumably renewed)
// bearer token. Requests to auth endpoints never trigger the hook.
func (c *Client) OnUnauthorized(renew func(ctx context.Context) bool) {
	c.renew = renew
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": refreshToken}, nil)
}

// RefreshAccessToken exchanges a refresh token for a fresh access token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", body, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterUser(ctx context.Context, input RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", input, nil)
}

func (c *Client) UpdateUserRole(ctx context.Context, email, role string) error {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(email), map[string]string{"role": role}, nil)
}

// UpdateProfile rewrites name and/or password of the given account; empty
// fields are omitted from the request.
func (c *Client) UpdateProfile(ctx context.Context, email, name, password string) error {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	if password != "" {
		body["password"] = password
	}
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(email), body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(email), nil, nil)
}

func (c *Client) ListIdeas(ctx context.Context) ([]model.Idea, error) {
	var out []model.Idea
	if err := c.do(ctx, http.MethodGet, "/ideas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateIdea(ctx context.Context, content, author string) error {
	return c.do(ctx, http.MethodPost, "/ideas", map[string]string{"content": content, "author": author}, nil)
}

func (c *Client) DeleteIdea(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/ideas/%d", id), nil, nil)
}

func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	var out []model.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateRoom(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/rooms", map[string]string{"name": name}, nil)
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rooms/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	status, payload, err := c.send(ctx, method, path, data)
	if err != nil {
		return err
	}

	// An expired access token is renewed once and the request replayed with
	// the new bearer. Auth endpoints are exempt so renewal cannot recurse.
	if status == http.StatusUnauthorized && c.renew != nil && !strings.HasPrefix(path, "/auth/") {
		if c.renew(ctx) {
			status, payload, err = c.send(ctx, method, path, data)
			if err != nil {
				return err
			}
		}
	}

	if status >= 400 {
		return &APIError{Status: status, Message: errorMessage(payload)}
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var rb io.Reader
	if body != nil {
		rb = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rb)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

// errorMessage pulls the server-provided message out of an error body,
// falling back to a generic text.
func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return "request failed"
}
