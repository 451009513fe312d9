package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dantsyura/nexus-cli/internal/client/models"
	"github.com/dantsyura/nexus-cli/internal/common"
	"github.com/dantsyura/nexus-cli/internal/logging"
)

// HTTPClient talks JSON over HTTP to the Nexus backend.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// NewHTTPClient builds a client for the given base URL. The timeout bounds
// each individual request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// do issues one JSON request and decodes a 2xx response body into out
// (skipped when out is nil). Transport failures map to common.ErrNetwork,
// undecodable bodies to common.ErrDecode, and any non-2xx status to
// *common.ServerError; route-specific statuses are refined by the callers.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "req_id", reqID, "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, common.ErrNetwork)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request completed",
		"req_id", reqID, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: %w", method, path, &common.ServerError{Code: resp.StatusCode})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, common.ErrDecode)
	}
	return nil
}

// statusIs reports whether err wraps a ServerError with the given HTTP status.
func statusIs(err error, code int) bool {
	var se *common.ServerError
	return errors.As(err, &se) && se.Code == code
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID int64        `json:"user_id"`
	User   *models.User `json:"user,omitempty"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (int64, *models.User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login/validate", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		if statusIs(err, http.StatusUnauthorized) {
			return 0, nil, common.ErrInvalidCredentials
		}
		return 0, nil, err
	}
	return resp.UserID, resp.User, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user)
	if err != nil {
		if statusIs(err, http.StatusNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	var users []models.User
	path := "/users/search?term=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) error {
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), patch, nil)
	if err != nil && statusIs(err, http.StatusNotFound) {
		return common.ErrNotFound
	}
	return err
}

func (c *HTTPClient) GetConnections(ctx context.Context, userID int64) ([]models.Connection, error) {
	var connections []models.Connection
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/connections", userID), nil, &connections)
	if err != nil {
		if statusIs(err, http.StatusNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return connections, nil
}

func (c *HTTPClient) GetRecentTags(ctx context.Context, userID int64) ([]string, error) {
	var tags []string
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/recent-tags", userID), nil, &tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *HTTPClient) CreateConnection(ctx context.Context, req CreateConnectionRequest) error {
	return c.do(ctx, http.MethodPost, "/connections", req, nil)
}

func (c *HTTPClient) UpdateConnection(ctx context.Context, req UpdateConnectionRequest) error {
	return c.do(ctx, http.MethodPut, "/connections/update", req, nil)
}

type deleteConnectionRequest struct {
	UserID    int64 `json:"user_id"`
	ContactID int64 `json:"contact_id"`
}

func (c *HTTPClient) DeleteConnection(ctx context.Context, userID, contactID int64) error {
	body := deleteConnectionRequest{UserID: userID, ContactID: contactID}
	return c.do(ctx, http.MethodDelete, "/connections", body, nil)
}

type createContactRequest struct {
	UserID      int64    `json:"user_id"`
	ContactText string   `json:"contact_text"`
	Tags        []string `json:"tags,omitempty"`
}

type createContactResponse struct {
	UserID int64 `json:"user_id"`
}

func (c *HTTPClient) CreateContact(ctx context.Context, userID int64, contactText string, tags []string) (int64, error) {
	var resp createContactResponse
	req := createContactRequest{UserID: userID, ContactText: contactText, Tags: tags}
	if err := c.do(ctx, http.MethodPost, "/contacts/create", req, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}
