package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dantsyura/nexus-cli/internal/client/models"
	"github.com/dantsyura/nexus-cli/internal/client/search"
	"github.com/dantsyura/nexus-cli/internal/client/tags"
)

// List refreshes the connection list from the server and prints it with the
// current text/tag filters applied. If the refresh fails transiently the
// last known list is shown instead, with a warning.
func (a *App) List(ctx context.Context) error {
	if err := a.store.Refresh(ctx); err != nil {
		printlnFn("Warning: could not refresh (" + userMessage(err) + "), showing cached list.")
	}
	a.render()
	return nil
}

// Search sets the text filter from the remaining arguments and prints the
// filtered list. A bare "search" clears the filter.
func (a *App) Search(ctx context.Context, args []string) error {
	a.query = strings.Join(args, " ")
	a.render()
	return nil
}

// Filter sets the tag filter and prints the filtered list. Only connections
// carrying every selected tag match. A bare "filter" clears the selection and
// lists the tags available for filtering.
func (a *App) Filter(ctx context.Context, args []string) error {
	a.selectedTags = args
	if len(args) == 0 {
		if all := tags.All(a.store.Connections()); len(all) > 0 {
			printlnFn("Available tags:", strings.Join(all, ", "))
		}
	}
	a.render()
	return nil
}

// Tags prints the user's recently used tags ordered by how many connections
// carry each one, most used first.
func (a *App) Tags(ctx context.Context) error {
	if err := a.store.RefreshRecentTags(ctx); err != nil {
		printlnFn("Warning: could not refresh tags (" + userMessage(err) + ").")
	}
	ranked := tags.Ranked(a.store.RecentTags(), a.store.Connections())
	if len(ranked) == 0 {
		printlnFn("No recent tags.")
		return nil
	}
	for _, t := range ranked {
		printlnFn("  " + t)
	}
	return nil
}

// render prints the current filtered view of the connection list.
func (a *App) render() {
	conns := search.Apply(a.store.Connections(), a.query, a.selectedTags)
	if len(conns) == 0 {
		printlnFn("No connections match.")
		return
	}
	for i := range conns {
		printlnFn(connectionRow(&conns[i]))
	}
	printlnFn(fmt.Sprintf("%d connection(s)", len(conns)))
}

// connectionRow formats one list line: id, name, relationship, tags.
func connectionRow(c *models.Connection) string {
	name := c.FullName()
	if name == "" {
		name = models.Str(c.Username)
	}
	row := fmt.Sprintf("%6d  %-24s %s", c.Id, name, c.RelationshipDescription)
	if len(c.Tags) > 0 {
		row += "  [" + strings.Join(c.Tags, ", ") + "]"
	}
	return row
}
