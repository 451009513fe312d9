package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dantsyura/nexus-cli/internal/client/models"
)

// Users lists everyone in the directory, connected or not.
func (a *App) Users(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	renderUsers(users)
	return nil
}

// Find runs the server-side substring search over the directory.
func (a *App) Find(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: find <text>")
	}
	users, err := a.client.SearchUsers(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	renderUsers(users)
	return nil
}

// Profile shows the active user's own profile. "profile edit" interactively
// patches a few common fields; an empty answer keeps the current value.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "edit" {
		return a.editProfile(ctx)
	}

	u := a.store.ActiveUser()
	if u == nil {
		printlnFn("Profile not loaded yet, log in again.")
		return nil
	}

	printlnFn(fmt.Sprintf("#%d %s", u.Id, u.FullName()))
	printField("Username", models.Str(u.Username))
	printField("Email", models.Str(u.Email))
	printField("Phone", models.Str(u.PhoneNumber))
	printField("Location", models.Str(u.Location))
	printField("Job title", models.Str(u.JobTitle))
	printField("Company", models.Str(u.Company))
	printField("University", models.Str(u.University))
	printField("Field of interest", models.Str(u.FieldOfInterest))
	printField("LinkedIn", models.Str(u.LinkedinURL))
	return nil
}

func (a *App) editProfile(ctx context.Context) error {
	var patch models.UserPatch

	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Location", &patch.Location},
		{"Job title", &patch.JobTitle},
		{"Company", &patch.Company},
		{"Field of interest", &patch.FieldOfInterest},
		{"LinkedIn URL", &patch.LinkedinURL},
	}

	changed := false
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt+" (empty to keep current)", os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = models.StrPtr(v)
			changed = true
		}
	}
	if !changed {
		printlnFn("Nothing to change.")
		return nil
	}

	if err := a.store.UpdateProfile(ctx, patch); err != nil {
		return err
	}
	printlnFn("Profile updated.")
	return nil
}

func renderUsers(users []models.User) {
	if len(users) == 0 {
		printlnFn("No users found.")
		return
	}
	for i := range users {
		u := &users[i]
		name := u.FullName()
		if name == "" {
			name = models.Str(u.Username)
		}
		row := fmt.Sprintf("%6d  %-24s", u.Id, name)
		if extra := models.Str(u.JobTitle); extra != "" {
			row += " " + extra
			if c := models.Str(u.Company); c != "" {
				row += " @ " + c
			}
		}
		printlnFn(row)
	}
	printlnFn(fmt.Sprintf("%d user(s)", len(users)))
}
