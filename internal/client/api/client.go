package api

import (
	"context"

	"github.com/dantsyura/nexus-cli/internal/client/models"
)

// Client is the contract of the Nexus backend, a JSON-over-HTTP collaborator.
// All methods honor context cancellation and return errors from the
// internal/common taxonomy.
type Client interface {
	// Login validates credentials and returns the authenticated user's id
	// plus the user payload when the server includes one.
	// Bad credentials map to common.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (int64, *models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser fetches one user. A 404 maps to common.ErrNotFound, which
	// callers treat as session invalidation for the active user.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// SearchUsers runs the server-side substring search.
	SearchUsers(ctx context.Context, term string) ([]models.User, error)

	// UpdateUser partially updates profile fields; only non-nil patch
	// fields are sent.
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) error

	// GetConnections fetches all relationship records for a user.
	GetConnections(ctx context.Context, userID int64) ([]models.Connection, error)

	// GetRecentTags fetches the user's most-recently-used tag list,
	// ordered by the server.
	GetRecentTags(ctx context.Context, userID int64) ([]string, error)

	CreateConnection(ctx context.Context, req CreateConnectionRequest) error
	UpdateConnection(ctx context.Context, req UpdateConnectionRequest) error
	DeleteConnection(ctx context.Context, userID, contactID int64) error

	// CreateContact creates a new user from free-form text and an initial
	// relationship to them in one call, returning the new contact's id.
	CreateContact(ctx context.Context, userID int64, contactText string, tags []string) (int64, error)
}

// CreateConnectionRequest is the body of POST /connections.
type CreateConnectionRequest struct {
	UserID      int64    `json:"user_id"`
	ContactID   int64    `json:"contact_id"`
	Description string   `json:"description"`
	Notes       string   `json:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateConnectionRequest is the body of PUT /connections/update. Nil fields
// are omitted so the server applies a partial update. UpdateTimestampOnly
// asks the server to bump last_viewed and change nothing else.
type UpdateConnectionRequest struct {
	UserID              int64    `json:"user_id"`
	ContactID           int64    `json:"contact_id"`
	Description *string `json:"description,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	// Tags distinguishes "leave unchanged" (nil) from "replace with this
	// set, possibly empty" (non-nil pointer).
	Tags                *[]string `json:"tags,omitempty"`
	UpdateTimestampOnly bool      `json:"update_timestamp_only,omitempty"`
}
