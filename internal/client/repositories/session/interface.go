package session

import "context"

// Repository stores the durable session state: the active user's id and the
// username used at login. Clear wipes everything, forcing re-login on the
// next start.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error

	SaveUser(ctx context.Context, id int64, username string) error
	ActiveUserID(ctx context.Context) (int64, error)
	Username(ctx context.Context) (string, error)
}
