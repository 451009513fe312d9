package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dantsyura/nexus-cli/internal/client/store"
)

// Add interactively connects the active user with an existing directory user:
// it prompts for a contact id, a relationship description, optional notes,
// and tags, then persists the connection.
func (a *App) Add(ctx context.Context) error {
	idText, err := getSimpleText(a.reader, "Enter the user id to connect with", os.Stdout)
	if err != nil {
		return err
	}
	contactID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", idText)
	}

	description, err := getSimpleText(a.reader, "How do you know them?", os.Stdout)
	if err != nil {
		return err
	}

	notes, err := GetMultiline(a.reader, "Notes (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	tagText, err := getSimpleText(a.reader, "Tags (comma separated, empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	in := store.AddInput{
		ContactID:   contactID,
		Description: description,
		Notes:       notes,
		Tags:        splitTags(tagText),
	}
	if err := a.store.Add(ctx, in); err != nil {
		return err
	}

	printlnFn("Connection added.")
	return nil
}

// NewContact creates a brand-new contact from a free-text blurb ("Jane Doe,
// met at the Acme mixer, works in fintech") plus optional tags. The backend
// parses the text into a profile and an initial relationship.
func (a *App) NewContact(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Describe the new contact (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	tagText, err := getSimpleText(a.reader, "Tags (comma separated, empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.store.CreateContact(ctx, store.CreateContactInput{Text: text, Tags: splitTags(tagText)})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Contact #%d (%s) created.", user.Id, user.FullName()))
	return nil
}
