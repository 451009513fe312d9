package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"

	"github.com/dantsyura/nexus-cli/internal/client/migrations"
	"github.com/dantsyura/nexus-cli/internal/common"
)

const (
	keyUserID   = "user_id"
	keyUsername = "username"
)

// InitDatabase opens the local sqlite database and applies the embedded
// schema migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return db, nil
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SaveUser records the authenticated user in a single transaction.
func (r *SQLiteRepository) SaveUser(ctx context.Context, id int64, username string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session tx: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string][]byte{
		keyUserID:   []byte(strconv.FormatInt(id, 10)),
		keyUsername: []byte(username),
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("failed to set session[%s]: %w", key, err)
		}
	}

	return tx.Commit()
}

// ActiveUserID returns the stored user id, or common.ErrNotLoggedIn when no
// session is persisted.
func (r *SQLiteRepository) ActiveUserID(ctx context.Context) (int64, error) {
	value, err := r.Get(ctx, keyUserID)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, common.ErrNotLoggedIn
	}
	id, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session user id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Username(ctx context.Context) (string, error) {
	value, err := r.Get(ctx, keyUsername)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", common.ErrNotLoggedIn
	}
	return string(value), nil
}
