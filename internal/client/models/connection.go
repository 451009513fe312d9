package models

import "time"

// Connection is a directed relationship record from the active user to one
// contact. It carries the contact's denormalized profile (so a list renders
// without a join) plus the relationship-specific fields. At most one
// Connection exists per (active user, contact) pair; the contact's Id
// identifies the record on the client.
type Connection struct {
	User

	RelationshipDescription string     `json:"relationship_description"`
	Notes                   string     `json:"notes,omitempty"`
	Tags                    []string   `json:"tags,omitempty"`
	LastViewed              *time.Time `json:"last_viewed,omitempty"`
}

// HasTag reports whether the connection carries the given tag.
func (c *Connection) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
