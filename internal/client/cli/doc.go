// Package cli provides the interactive daheeh command-line client.
//
// It wires configuration, local storage, the credential store, the session
// manager and the progression engine behind a small REPL. Typical flow:
// restore the previous session and progress, then execute user commands.
//
// Key features:
//   - register / login / google / guest / logout
//   - award xp, list and dismiss toasts, reset progress
//   - status with level, rank and streak
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
