// Package tags computes the tag vocabulary of a connection list and its
// display ordering, and filters connections by tag.
package tags

import (
	"sort"

	"github.com/dantsyura/nexus-cli/internal/client/models"
)

// All returns the distinct tag strings across all connections, case
// sensitive, sorted alphabetically. Duplicates within one connection are
// collapsed.
func All(connections []models.Connection) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range connections {
		for _, t := range c.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Ranked orders tags by descending usage frequency across connections, with
// ties broken by the original order of recent. Only tags present in recent
// are candidates: a tag used often but not recently is not promoted. This
// mirrors the product's "tags the user actually uses, most-used first"
// behavior, including its bias toward the recent pool.
func Ranked(recent []string, connections []models.Connection) []string {
	counts := make(map[string]int, len(recent))
	for _, c := range connections {
		counted := make(map[string]struct{}, len(c.Tags))
		for _, t := range c.Tags {
			// A duplicate tag on one connection counts once.
			if _, ok := counted[t]; ok {
				continue
			}
			counted[t] = struct{}{}
			counts[t]++
		}
	}

	out := make([]string, len(recent))
	copy(out, recent)
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i]] > counts[out[j]]
	})
	return out
}

// FilterByTags returns the connections whose tag set is a superset of
// selected (AND semantics): a connection must carry every selected tag to
// match. An empty selection matches everything. Original order is preserved.
func FilterByTags(connections []models.Connection, selected []string) []models.Connection {
	if len(selected) == 0 {
		return connections
	}

	out := make([]models.Connection, 0, len(connections))
	for _, c := range connections {
		if hasAll(&c, selected) {
			out = append(out, c)
		}
	}
	return out
}

func hasAll(c *models.Connection, selected []string) bool {
	for _, t := range selected {
		if !c.HasTag(t) {
			return false
		}
	}
	return true
}
