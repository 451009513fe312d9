package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Tags(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	NewContact(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Untag(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	Find(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Nexus CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list           — list connections (current filters applied)
//	  - search <text>  — set the text filter and list; bare search clears it
//	  - filter <tag…>  — set the tag filter and list; bare filter clears it
//	  - tags           — show recently used tags, most used first
//	  - show <id>      — show one connection in detail
//	  - add            — connect with an existing user (interactive)
//	  - new            — create a brand-new contact from free text (interactive)
//	  - edit <id>      — edit a connection's description/notes (interactive)
//	  - tag <id> <t…>  — add tags to a connection
//	  - untag <id> <t> — remove a tag from a connection
//	  - rm <id>        — remove a connection
//	  - users          — list all users in the directory
//	  - find <text>    — server-side user search
//	  - profile        — show own profile; "profile edit" updates it
//	  - logout         — log out and forget the session
//	  - exit | quit    — leave the program
//
// Command handlers return errors for display here; the loop itself never
// terminates on a command failure, so the user can simply retry.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nx %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, filter, tags, show, add, new, edit, tag, untag, rm, users, find, profile, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "search":
			err = a.Search(ctx, args)

		case "filter":
			err = a.Filter(ctx, args)

		case "tags":
			err = a.Tags(ctx)

		case "show":
			err = a.Show(ctx, args)

		case "add":
			err = a.Add(ctx)

		case "new":
			err = a.NewContact(ctx)

		case "edit":
			err = a.Edit(ctx, args)

		case "tag":
			err = a.Tag(ctx, args)

		case "untag":
			err = a.Untag(ctx, args)

		case "rm":
			err = a.Remove(ctx, args)

		case "users":
			err = a.Users(ctx)

		case "find":
			err = a.Find(ctx, args)

		case "profile":
			err = a.Profile(ctx, args)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", userMessage(err))
		}
	}
}
