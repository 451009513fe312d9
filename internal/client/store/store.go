// Package store maintains the authoritative local view of the active user's
// connection graph and keeps it consistent with the backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-retry"

	"github.com/dantsyura/nexus-cli/internal/client/api"
	"github.com/dantsyura/nexus-cli/internal/client/models"
	"github.com/dantsyura/nexus-cli/internal/client/repositories/session"
	"github.com/dantsyura/nexus-cli/internal/common"
	"github.com/dantsyura/nexus-cli/internal/logging"
)

// refreshRetryDelay is the pause before the single automatic re-fetch of the
// connection list after a transient failure.
const refreshRetryDelay = time.Second

// ConnectionStore holds the in-memory list of the active user's connections.
//
// Reads return copied snapshots; all mutations are serialized through the
// internal mutex, so the store is safe for concurrent use. After a successful
// Refresh the list exactly mirrors the server's relationship set, sorted by
// last-viewed descending with never-viewed connections last. Reads during an
// in-flight refresh see the previous snapshot.
type ConnectionStore struct {
	client   api.Client
	sessions session.Repository
	log      logging.Logger
	validate *validator.Validate

	mu          sync.RWMutex
	userID      int64
	user        *models.User
	connections []models.Connection
	recentTags  []string
	appliedSeq  uint64

	refreshMu      sync.Mutex
	refreshSeq     uint64
	cancelInFlight context.CancelFunc

	subsMu sync.Mutex
	subs   []func()
}

func New(client api.Client, sessions session.Repository, log logging.Logger) *ConnectionStore {
	return &ConnectionStore{
		client:   client,
		sessions: sessions,
		log:      log,
		validate: validator.New(),
	}
}

// Subscribe registers fn to be invoked after every applied change to the
// store's state. Handlers must be fast and must not call back into the store.
func (s *ConnectionStore) Subscribe(fn func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *ConnectionStore) notify() {
	s.subsMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// ActiveUserID returns the logged-in user's id, or 0 when logged out.
func (s *ConnectionStore) ActiveUserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// ActiveUser returns the logged-in user's profile, or nil when logged out.
func (s *ConnectionStore) ActiveUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Connections returns a snapshot of the current list.
func (s *ConnectionStore) Connections() []models.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Connection, len(s.connections))
	copy(out, s.connections)
	return out
}

// RecentTags returns a snapshot of the server-maintained recent tag list.
func (s *ConnectionStore) RecentTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.recentTags))
	copy(out, s.recentTags)
	return out
}

func (s *ConnectionStore) activeUserID() (int64, error) {
	id := s.ActiveUserID()
	if id == 0 {
		return 0, common.ErrNotLoggedIn
	}
	return id, nil
}

// Login validates credentials, persists the session, and loads the initial
// connection list and recent tags (both best-effort; their errors are logged,
// not returned, so a slow list fetch does not fail the login).
func (s *ConnectionStore) Login(ctx context.Context, username, password string) error {
	id, user, err := s.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if user == nil {
		user, err = s.client.GetUser(ctx, id)
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
	}

	if err := s.sessions.SaveUser(ctx, id, username); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.setActiveUser(id, user)

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "initial connection refresh failed", "error", err)
	}
	if err := s.RefreshRecentTags(ctx); err != nil {
		s.log.Warn(ctx, "initial recent-tags fetch failed", "error", err)
	}
	return nil
}

// RestoreSession resumes a persisted session. A 404 from the user fetch means
// the server no longer recognizes the stored id: the session is cleared and
// common.ErrNotFound returned so the UI forces re-login.
func (s *ConnectionStore) RestoreSession(ctx context.Context) error {
	id, err := s.sessions.ActiveUserID(ctx)
	if err != nil {
		return err
	}

	user, err := s.client.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.invalidateSession(ctx)
			return common.ErrNotFound
		}
		return fmt.Errorf("restoring session: %w", err)
	}

	s.setActiveUser(id, user)

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "connection refresh on restore failed", "error", err)
	}
	if err := s.RefreshRecentTags(ctx); err != nil {
		s.log.Warn(ctx, "recent-tags fetch on restore failed", "error", err)
	}
	return nil
}

// Logout clears the persisted session and all in-memory state.
func (s *ConnectionStore) Logout(ctx context.Context) error {
	err := s.sessions.Clear(ctx)
	s.resetState()
	return err
}

func (s *ConnectionStore) setActiveUser(id int64, user *models.User) {
	s.mu.Lock()
	s.userID = id
	s.user = user
	s.mu.Unlock()
	s.notify()
}

func (s *ConnectionStore) resetState() {
	s.mu.Lock()
	s.userID = 0
	s.user = nil
	s.connections = nil
	s.recentTags = nil
	s.mu.Unlock()
	s.notify()
}

// invalidateSession wipes local session state after the server reported the
// user gone, so the UI drops back to an unauthenticated state instead of
// failing repeatedly against a dead session.
func (s *ConnectionStore) invalidateSession(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Error(ctx, "clearing invalidated session failed", "error", err)
	}
	s.resetState()
}

// Refresh fetches the full connection list and replaces the local one. It
// returns once the result is applied (or the fetch has definitively failed),
// so callers can read fresh data immediately afterwards.
//
// A transient failure (network, 5xx, decode) is retried once after a fixed
// delay; on final failure the last-known-good list is preserved. A 404 means
// the active user is gone: the list is cleared and the session invalidated.
// Issuing a refresh cancels the previous in-flight one, and a response that
// lost the race to a newer refresh is discarded rather than applied.
func (s *ConnectionStore) Refresh(ctx context.Context) error {
	userID, err := s.activeUserID()
	if err != nil {
		return err
	}

	rctx, seq := s.beginRefresh(ctx)

	var conns []models.Connection
	backoff := retry.WithMaxRetries(1, retry.NewConstant(refreshRetryDelay))
	err = retry.Do(rctx, backoff, func(ctx context.Context) error {
		got, err := s.client.GetConnections(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return err
			}
			s.log.Warn(ctx, "connection fetch failed", "user_id", userID, "error", err)
			return retry.RetryableError(err)
		}
		conns = got
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.invalidateSession(ctx)
			return fmt.Errorf("refresh: %w", common.ErrNotFound)
		}
		return fmt.Errorf("refresh: %w", err)
	}

	s.applyConnections(seq, conns)
	return nil
}

// beginRefresh cancels any in-flight refresh and allocates the next sequence
// number for this one.
func (s *ConnectionStore) beginRefresh(ctx context.Context) (context.Context, uint64) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.cancelInFlight != nil {
		s.cancelInFlight()
	}
	rctx, cancel := context.WithCancel(ctx)
	s.cancelInFlight = cancel
	s.refreshSeq++
	return rctx, s.refreshSeq
}

// nextSeq allocates a sequence number for a local mutation so that older
// in-flight refresh responses cannot overwrite its effect.
func (s *ConnectionStore) nextSeq() uint64 {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if s.cancelInFlight != nil {
		s.cancelInFlight()
		s.cancelInFlight = nil
	}
	s.refreshSeq++
	return s.refreshSeq
}

// applyConnections installs a fetched list unless a newer result has already
// been applied. The list is replaced wholesale, sorted by last-viewed
// descending with never-viewed entries at the end.
func (s *ConnectionStore) applyConnections(seq uint64, conns []models.Connection) bool {
	sortConnections(conns)

	s.mu.Lock()
	if seq <= s.appliedSeq {
		s.mu.Unlock()
		return false
	}
	s.appliedSeq = seq
	s.connections = conns
	s.mu.Unlock()

	s.notify()
	return true
}

func sortConnections(conns []models.Connection) {
	sort.SliceStable(conns, func(i, j int) bool {
		a, b := conns[i].LastViewed, conns[j].LastViewed
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

// RefreshRecentTags fetches the server-maintained recent tag list.
func (s *ConnectionStore) RefreshRecentTags(ctx context.Context) error {
	userID, err := s.activeUserID()
	if err != nil {
		return err
	}

	tags, err := s.client.GetRecentTags(ctx, userID)
	if err != nil {
		return fmt.Errorf("recent tags: %w", err)
	}

	s.mu.Lock()
	s.recentTags = tags
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddInput describes a new relationship to an existing user.
type AddInput struct {
	ContactID   int64  `validate:"required,gt=0"`
	Description string `validate:"required"`
	Notes       string
	Tags        []string
}

// Add creates a relationship to an existing user and refreshes the list so it
// reflects server-assigned fields.
func (s *ConnectionStore) Add(ctx context.Context, in AddInput) error {
	userID, err := s.activeUserID()
	if err != nil {
		return err
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	req := api.CreateConnectionRequest{
		UserID:      userID,
		ContactID:   in.ContactID,
		Description: in.Description,
		Notes:       in.Notes,
		Tags:        in.Tags,
	}
	if err := s.client.CreateConnection(ctx, req); err != nil {
		return fmt.Errorf("adding connection: %w", err)
	}

	s.afterTagMutation(ctx, in.Tags)
	return s.Refresh(ctx)
}

// UpdateInput is a partial update: nil fields are left untouched.
type UpdateInput struct {
	ContactID   int64 `validate:"required,gt=0"`
	Description *string
	Notes       *string
	Tags        []string
}

// Update patches an existing relationship and refreshes the list.
func (s *ConnectionStore) Update(ctx context.Context, in UpdateInput) error {
	userID, err := s.activeUserID()
	if err != nil {
		return err
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	if in.Description == nil && in.Notes == nil && in.Tags == nil {
		return fmt.Errorf("%w: no fields to update", common.ErrInvalidInput)
	}

	req := api.UpdateConnectionRequest{
		UserID:      userID,
		ContactID:   in.ContactID,
		Description: in.Description,
		Notes:       in.Notes,
	}
	if in.Tags != nil {
		req.Tags = &in.Tags
	}
	if err := s.client.UpdateConnection(ctx, req); err != nil {
		return fmt.Errorf("updating connection: %w", err)
	}

	s.afterTagMutation(ctx, in.Tags)
	return s.Refresh(ctx)
}

// afterTagMutation re-fetches the recent tag pool when a mutation carried
// tags; the server appends them to the user's recent list.
func (s *ConnectionStore) afterTagMutation(ctx context.Context, tags []string) {
	if len(tags) == 0 {
		return
	}
	if err := s.RefreshRecentTags(ctx); err != nil {
		s.log.Warn(ctx, "recent-tags refresh after mutation failed", "error", err)
	}
}

// TouchLastViewed bumps the relationship's last-viewed timestamp.
// Fire-and-forget: failures are logged, never surfaced. On success the local
// copy is advanced so list ordering stays fresh without a refetch.
func (s *ConnectionStore) TouchLastViewed(contactID int64) {
	userID, err := s.activeUserID()
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req := api.UpdateConnectionRequest{
			UserID:              userID,
			ContactID:           contactID,
			UpdateTimestampOnly: true,
		}
		if err := s.client.UpdateConnection(ctx, req); err != nil {
			s.log.Warn(ctx, "last-viewed touch failed", "contact_id", contactID, "error", err)
			return
		}

		now := time.Now()
		s.mu.Lock()
		for i := range s.connections {
			if s.connections[i].Id == contactID {
				s.connections[i].LastViewed = &now
				break
			}
		}
		sortConnections(s.connections)
		s.mu.Unlock()
		s.notify()
	}()
}

// Remove deletes the relationship. On confirmed success the entry is removed
// from the local list synchronously, so the UI never shows a just-deleted row
// even before any follow-up refresh.
func (s *ConnectionStore) Remove(ctx context.Context, contactID int64) error {
	userID, err := s.activeUserID()
	if err != nil {
		return err
	}

	if err := s.client.DeleteConnection(ctx, userID, contactID); err != nil {
		return fmt.Errorf("removing connection: %w", err)
	}

	seq := s.nextSeq()

	s.mu.Lock()
	if seq > s.appliedSeq {
		s.appliedSeq = seq
	}
	filtered := s.connections[:0:0]
	for _, c := range s.connections {
		if c.Id != contactID {
			filtered = append(filtered, c)
		}
	}
	s.connections = filtered
	s.mu.Unlock()

	s.notify()
	return nil
}

// CreateContactInput is the free-text contact creation request.
type CreateContactInput struct {
	Text string `validate:"required"`
	Tags []string
}

// CreateContact creates a new user plus an initial relationship from free
// text in one server call, then fetches the new contact and refreshes the
// list. Returns the created contact's profile.
func (s *ConnectionStore) CreateContact(ctx context.Context, in CreateContactInput) (*models.User, error) {
	userID, err := s.activeUserID()
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	contactID, err := s.client.CreateContact(ctx, userID, in.Text, in.Tags)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	contact, err := s.client.GetUser(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("fetching created contact: %w", err)
	}

	s.afterTagMutation(ctx, in.Tags)
	if err := s.Refresh(ctx); err != nil {
		return contact, err
	}
	return contact, nil
}

// UpdateProfile patches the active user's own profile fields and refetches
// the profile. A 404 invalidates the session.
func (s *ConnectionStore) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	userID, err := s.activeUserID()
	if err != nil {
		return err
	}

	if err := s.client.UpdateUser(ctx, userID, patch); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.invalidateSession(ctx)
		}
		return fmt.Errorf("updating profile: %w", err)
	}

	user, err := s.client.GetUser(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "profile refetch after update failed", "error", err)
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
	return nil
}
