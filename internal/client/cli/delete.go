package cli

import (
	"context"
	"os"
	"strings"
)

// Remove deletes a connection after an explicit confirmation. The contact
// disappears from the list immediately on success.
func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := parseID(args, "rm <id>")
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, "Remove this connection? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.store.Remove(ctx, id); err != nil {
		return err
	}
	printlnFn("Connection removed.")
	return nil
}
