package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context, args []string) error
	GoogleProfile(ctx context.Context, args []string) error
	Guest(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Award(ctx context.Context, args []string) error
	Toasts(ctx context.Context) error
	Dismiss(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, google <id_token>, google-profile <json>, guest, status, award <reason> [amount], toasts, dismiss <id>, reset, exit"
	helpSignedIn  = "Available commands: logout, status, award <reason> [amount], toasts, dismiss <id>, reset, exit"
)

// runREPL reads a line from reader, parses the first token as the command
// and dispatches to methods on a. The loop exits on EOF or when the user
// types "exit" or "quit". A failing command prints its error and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "daheeh %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isAuthenticated() {
				fmt.Fprintln(out, helpSignedIn)
			} else {
				fmt.Fprintln(out, helpSignedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "google":
			cmdErr = a.Google(ctx, args)
		case "google-profile":
			cmdErr = a.GoogleProfile(ctx, args)
		case "guest":
			cmdErr = a.Guest(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "award":
			cmdErr = a.Award(ctx, args)
		case "toasts":
			cmdErr = a.Toasts(ctx)
		case "dismiss":
			cmdErr = a.Dismiss(ctx, args)
		case "reset":
			cmdErr = a.Reset(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}
