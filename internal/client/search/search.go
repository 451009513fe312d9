// Package search filters a connection list by free-text query composed with
// tag selection, producing the view list shown to the user.
package search

import (
	"strings"

	"github.com/dantsyura/nexus-cli/internal/client/models"
	"github.com/dantsyura/nexus-cli/internal/client/tags"
)

// Apply returns the connections matching both the text query and the selected
// tag set, preserving original relative order. With an empty query and no
// selected tags the input is returned unchanged.
//
// The text match is a case-insensitive substring test against a corpus built
// from the connection's profile fields (name, job title, company, university,
// location, field of interest) and relationship fields (description, notes).
// Tag matching is superset (AND) semantics, per tags.FilterByTags.
func Apply(connections []models.Connection, query string, selected []string) []models.Connection {
	if query == "" && len(selected) == 0 {
		return connections
	}

	filtered := tags.FilterByTags(connections, selected)
	if query == "" {
		return filtered
	}

	needle := strings.ToLower(query)
	out := make([]models.Connection, 0, len(filtered))
	for _, c := range filtered {
		if strings.Contains(corpus(&c), needle) {
			out = append(out, c)
		}
	}
	return out
}

// corpus joins the searchable fields with single spaces, lower-cased.
// Absent fields contribute nothing.
func corpus(c *models.Connection) string {
	parts := make([]string, 0, 9)
	for _, p := range []*string{
		c.FirstName,
		c.LastName,
		c.JobTitle,
		c.Company,
		c.University,
		c.Location,
		c.FieldOfInterest,
	} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	if c.RelationshipDescription != "" {
		parts = append(parts, c.RelationshipDescription)
	}
	if c.Notes != "" {
		parts = append(parts, c.Notes)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
