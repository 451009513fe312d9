package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dantsyura/nexus-cli/internal/client/models"
	"github.com/dantsyura/nexus-cli/internal/client/store"
)

// Edit interactively updates a connection's relationship description and
// notes. An empty answer keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}

	description, err := getSimpleText(a.reader, "New description (empty to keep current)", os.Stdout)
	if err != nil {
		return err
	}

	notes, err := GetMultiline(a.reader, "New notes (double Enter to finish, empty to keep current):", os.Stdout)
	if err != nil {
		return err
	}

	in := store.UpdateInput{ContactID: id}
	if description != "" {
		in.Description = models.StrPtr(description)
	}
	if notes != "" {
		in.Notes = models.StrPtr(notes)
	}
	if in.Description == nil && in.Notes == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	if err := a.store.Update(ctx, in); err != nil {
		return err
	}
	printlnFn("Connection updated.")
	return nil
}

// Tag adds one or more tags to a connection, keeping the existing ones.
func (a *App) Tag(ctx context.Context, args []string) error {
	id, err := parseID(args, "tag <id> <tag…>")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: tag <id> <tag…>")
	}

	conn := a.findConnection(id)
	if conn == nil {
		printlnFn("No connection with this user.")
		return nil
	}

	merged := append([]string{}, conn.Tags...)
	for _, t := range args[1:] {
		if !conn.HasTag(t) {
			merged = append(merged, t)
		}
	}
	if len(merged) == len(conn.Tags) {
		printlnFn("Already tagged.")
		return nil
	}

	if err := a.store.Update(ctx, store.UpdateInput{ContactID: id, Tags: merged}); err != nil {
		return err
	}
	printlnFn("Tags updated.")
	return nil
}

// Untag removes a single tag from a connection.
func (a *App) Untag(ctx context.Context, args []string) error {
	id, err := parseID(args, "untag <id> <tag>")
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: untag <id> <tag>")
	}

	conn := a.findConnection(id)
	if conn == nil {
		printlnFn("No connection with this user.")
		return nil
	}
	if !conn.HasTag(args[1]) {
		printlnFn("Connection does not carry this tag.")
		return nil
	}

	remaining := make([]string, 0, len(conn.Tags)-1)
	for _, t := range conn.Tags {
		if t != args[1] {
			remaining = append(remaining, t)
		}
	}

	if err := a.store.Update(ctx, store.UpdateInput{ContactID: id, Tags: remaining}); err != nil {
		return err
	}
	printlnFn("Tag removed.")
	return nil
}

// findConnection scans the local snapshot for the given contact id.
func (a *App) findConnection(id int64) *models.Connection {
	for _, c := range a.store.Connections() {
		if c.Id == id {
			return &c
		}
	}
	return nil
}
