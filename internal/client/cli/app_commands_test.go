package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantsyura/nexus-cli/internal/client/api"
	"github.com/dantsyura/nexus-cli/internal/client/models"
	"github.com/dantsyura/nexus-cli/internal/client/repositories/session"
	"github.com/dantsyura/nexus-cli/internal/client/store"
	"github.com/dantsyura/nexus-cli/internal/logging"
)

// stubAPI implements api.Client with canned responses, recording mutations.
type stubAPI struct {
	user           *models.User
	connections    []models.Connection
	recentTags     []string
	users          []models.User
	lastUpdateReq  api.UpdateConnectionRequest
	lastSearchTerm string
	deleteCalls    int
}

func (s *stubAPI) Login(ctx context.Context, username, password string) (int64, *models.User, error) {
	return s.user.Id, s.user, nil
}
func (s *stubAPI) ListUsers(ctx context.Context) ([]models.User, error) { return s.users, nil }
func (s *stubAPI) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.user, nil
}
func (s *stubAPI) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	s.lastSearchTerm = term
	return s.users, nil
}
func (s *stubAPI) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) error {
	return nil
}
func (s *stubAPI) GetConnections(ctx context.Context, userID int64) ([]models.Connection, error) {
	return s.connections, nil
}
func (s *stubAPI) GetRecentTags(ctx context.Context, userID int64) ([]string, error) {
	return s.recentTags, nil
}
func (s *stubAPI) CreateConnection(ctx context.Context, req api.CreateConnectionRequest) error {
	return nil
}
func (s *stubAPI) UpdateConnection(ctx context.Context, req api.UpdateConnectionRequest) error {
	s.lastUpdateReq = req
	return nil
}
func (s *stubAPI) DeleteConnection(ctx context.Context, userID, contactID int64) error {
	s.deleteCalls++
	return nil
}
func (s *stubAPI) CreateContact(ctx context.Context, userID int64, contactText string, tags []string) (int64, error) {
	return 99, nil
}

func newTestApp(t *testing.T, stub *stubAPI) *App {
	t.Helper()

	dsn := fmt.Sprintf("file:cli_%s?mode=memory&cache=shared", t.Name())
	db, err := session.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := session.NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(context.Background()))

	log := logging.NewTextLogger(io.Discard, slog.LevelDebug)
	st := store.New(stub, repo, log)
	require.NoError(t, st.Login(context.Background(), "dan", "secret"))

	return &App{
		client:   stub,
		store:    st,
		resolver: store.NewRelationshipResolver(st),
		log:      log,
		reader:   bufio.NewReader(strings.NewReader("")),
	}
}

func taggedConn(id int64, tags ...string) models.Connection {
	return models.Connection{
		User:                    models.User{Id: id, FirstName: models.StrPtr("Jane"), LastName: models.StrPtr("Doe")},
		RelationshipDescription: "colleague",
		Tags:                    tags,
	}
}

func TestAppTag_MergesWithExistingTags(t *testing.T) {
	silencePrintln(t)
	stub := &stubAPI{
		user:        &models.User{Id: 1, Username: models.StrPtr("dan")},
		connections: []models.Connection{taggedConn(7, "Work")},
	}
	a := newTestApp(t, stub)

	require.NoError(t, a.Tag(context.Background(), []string{"7", "NYC", "Work"}))

	require.NotNil(t, stub.lastUpdateReq.Tags)
	require.Equal(t, []string{"Work", "NYC"}, *stub.lastUpdateReq.Tags)
	require.Equal(t, int64(7), stub.lastUpdateReq.ContactID)
}

func TestAppUntag_LastTagSendsEmptySet(t *testing.T) {
	silencePrintln(t)
	stub := &stubAPI{
		user:        &models.User{Id: 1, Username: models.StrPtr("dan")},
		connections: []models.Connection{taggedConn(7, "Work")},
	}
	a := newTestApp(t, stub)

	require.NoError(t, a.Untag(context.Background(), []string{"7", "Work"}))

	require.NotNil(t, stub.lastUpdateReq.Tags)
	require.Empty(t, *stub.lastUpdateReq.Tags)
}

func TestAppUntag_MissingTagIsNoop(t *testing.T) {
	silencePrintln(t)
	stub := &stubAPI{
		user:        &models.User{Id: 1, Username: models.StrPtr("dan")},
		connections: []models.Connection{taggedConn(7, "Work")},
	}
	a := newTestApp(t, stub)

	require.NoError(t, a.Untag(context.Background(), []string{"7", "NYC"}))
	require.Nil(t, stub.lastUpdateReq.Tags)
}

func TestAppSearchAndFilter_NarrowTheList(t *testing.T) {
	lines := captureOutput(t)
	stub := &stubAPI{
		user: &models.User{Id: 1, Username: models.StrPtr("dan")},
		connections: []models.Connection{
			{
				User:                    models.User{Id: 7, FirstName: models.StrPtr("Jane"), JobTitle: models.StrPtr("Engineer")},
				RelationshipDescription: "colleague",
				Tags:                    []string{"Work"},
			},
			{
				User:                    models.User{Id: 8, FirstName: models.StrPtr("Bob"), JobTitle: models.StrPtr("Designer")},
				RelationshipDescription: "friend",
			},
		},
	}
	a := newTestApp(t, stub)

	require.NoError(t, a.Search(context.Background(), []string{"eng"}))
	out := strings.Join(*lines, "\n")
	require.Contains(t, out, "Jane")
	require.NotContains(t, out, "Bob")

	*lines = nil
	require.NoError(t, a.Filter(context.Background(), []string{"Work"})) // query "eng" still active
	out = strings.Join(*lines, "\n")
	require.Contains(t, out, "Jane")
	require.NotContains(t, out, "Bob")
}

func TestAppFilter_BareClearsAndListsAvailableTags(t *testing.T) {
	lines := captureOutput(t)
	stub := &stubAPI{
		user: &models.User{Id: 1, Username: models.StrPtr("dan")},
		connections: []models.Connection{
			taggedConn(7, "Work"),
			taggedConn(8, "Alumni", "Work"),
		},
	}
	a := newTestApp(t, stub)
	a.selectedTags = []string{"Alumni"}

	require.NoError(t, a.Filter(context.Background(), nil))

	require.Empty(t, a.selectedTags)
	require.Contains(t, strings.Join(*lines, "\n"), "Available tags: Alumni, Work")
}

func TestAppRemove_CancelledWithoutConfirmation(t *testing.T) {
	silencePrintln(t)
	origText := getSimpleText
	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		return "n", nil
	}
	t.Cleanup(func() { getSimpleText = origText })

	stub := &stubAPI{
		user:        &models.User{Id: 1, Username: models.StrPtr("dan")},
		connections: []models.Connection{taggedConn(7, "Work")},
	}
	a := newTestApp(t, stub)

	require.NoError(t, a.Remove(context.Background(), []string{"7"}))
	require.Equal(t, 0, stub.deleteCalls)
}

func TestAppFind_PassesJoinedTerm(t *testing.T) {
	silencePrintln(t)
	stub := &stubAPI{
		user:  &models.User{Id: 1, Username: models.StrPtr("dan")},
		users: []models.User{{Id: 2, FirstName: models.StrPtr("Jane")}},
	}
	a := newTestApp(t, stub)

	require.NoError(t, a.Find(context.Background(), []string{"jane", "doe"}))
	require.Equal(t, "jane doe", stub.lastSearchTerm)
}
