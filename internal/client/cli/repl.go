package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs. The real
// App type satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Filter(ctx context.Context) error
	Show(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Summarize(ctx context.Context) error
	GenerateTags(ctx context.Context) error
	Search(ctx context.Context, semantic bool) error
	Recent(ctx context.Context) error
	Ask(ctx context.Context) error
	History(ctx context.Context) error
	ClearHistory(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, filter, show, new, edit, delete, " +
		"summarize, tags, search, ssearch, recent, ask, history, clearhistory, logout, exit"

	loginRequiredMsg = "Please log in first (type 'login')."
)

// authRequired lists the commands only available to a logged-in user.
// Everything here operates on the session's data, including the locally
// persisted transcript, so the gate applies even to commands that never
// reach the backend.
var authRequired = map[string]bool{
	"logout": true, "l": true, "list": true, "filter": true, "show": true,
	"new": true, "edit": true, "delete": true, "summarize": true,
	"tags": true, "search": true, "ssearch": true, "recent": true,
	"ask": true, "history": true, "clearhistory": true,
}

// runREPL is the interactive loop: read a line, dispatch the first token
// as a command, repeat. It exits on scanner EOF or on "exit"/"quit".
//
// Command handlers report their own failures to the user; errors returned
// here are deliberately dropped so one failed operation never kills the
// loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("kb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if authRequired[cmd] && !a.isLoggedIn() {
			printlnFn(loginRequiredMsg)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "filter":
			_ = a.Filter(ctx)

		case "show":
			_ = a.Show(ctx)

		case "new":
			_ = a.New(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "summarize":
			_ = a.Summarize(ctx)

		case "tags":
			_ = a.GenerateTags(ctx)

		case "search":
			_ = a.Search(ctx, false)

		case "ssearch":
			_ = a.Search(ctx, true)

		case "recent":
			_ = a.Recent(ctx)

		case "ask":
			_ = a.Ask(ctx)

		case "history":
			_ = a.History(ctx)

		case "clearhistory":
			_ = a.ClearHistory(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
