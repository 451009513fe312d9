package store

import (
	"context"

	"github.com/dantsyura/nexus-cli/internal/client/models"
)

// RelationshipResolver answers "what, if any, relationship exists between the
// active user and a given contact", tolerating a list that has not been
// loaded yet by awaiting a fresh fetch instead of racing a timer.
type RelationshipResolver struct {
	store *ConnectionStore
}

func NewRelationshipResolver(s *ConnectionStore) *RelationshipResolver {
	return &RelationshipResolver{store: s}
}

// Resolve returns the relationship record for contactID, or (nil, nil) when
// none exists. A user has no relationship with themself, so that case returns
// immediately without touching the network.
//
// The resolver refreshes the store first and scans the applied snapshot. When
// the refresh fails, the last-known-good snapshot is still scanned: a cached
// hit is returned, a miss surfaces the refresh error so the caller can retry.
func (r *RelationshipResolver) Resolve(ctx context.Context, contactID int64) (*models.Connection, error) {
	if contactID == r.store.ActiveUserID() {
		return nil, nil
	}

	refreshErr := r.store.Refresh(ctx)

	for _, c := range r.store.Connections() {
		if c.Id == contactID {
			found := c
			return &found, nil
		}
	}

	if refreshErr != nil {
		return nil, refreshErr
	}
	return nil, nil
}
