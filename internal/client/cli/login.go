package cli

import (
	"context"
	"os"

	"github.com/dantsyura/nexus-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and authenticates against the
// backend. On success the session is persisted and the connection list is
// warmed up, so a subsequent list shows data without an explicit refresh.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in.")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.Login(ctx, userName, string(password)); err != nil {
		return err
	}

	printlnFn("Login successful.")
	return nil
}

// Logout forgets the persisted session and clears all local state,
// including the REPL's filters.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	a.query = ""
	a.selectedTags = nil
	printlnFn("Logged out.")
	return nil
}
