package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dantsyura/nexus-cli/internal/client/models"
)

// Show displays a single connection in detail and records the view so the
// contact floats to the top of the list.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		return err
	}

	conn, err := a.resolver.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if conn == nil {
		printlnFn("No connection with this user.")
		return nil
	}

	name := conn.FullName()
	if name == "" {
		name = models.Str(conn.Username)
	}
	printlnFn(fmt.Sprintf("#%d %s", conn.Id, name))
	printField("Relationship", conn.RelationshipDescription)
	printField("Notes", conn.Notes)
	printField("Job title", models.Str(conn.JobTitle))
	printField("Company", models.Str(conn.Company))
	printField("Location", models.Str(conn.Location))
	printField("University", models.Str(conn.University))
	printField("Field of interest", models.Str(conn.FieldOfInterest))
	printField("Email", models.Str(conn.Email))
	printField("Phone", models.Str(conn.PhoneNumber))
	printField("LinkedIn", models.Str(conn.LinkedinURL))
	if len(conn.Tags) > 0 {
		printField("Tags", strings.Join(conn.Tags, ", "))
	}
	if conn.LastViewed != nil {
		printField("Last viewed", conn.LastViewed.Format("2006-01-02 15:04"))
	}

	a.store.TouchLastViewed(conn.Id)
	return nil
}

func printField(name, value string) {
	if value == "" {
		return
	}
	printlnFn(fmt.Sprintf("  %s: %s", name, value))
}
