package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	authenticated bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isAuthenticated() bool { return f.authenticated }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.authenticated = true
	return f.record("login", nil)
}
func (f *fakeExec) Google(_ context.Context, args []string) error { return f.record("google", args) }
func (f *fakeExec) GoogleProfile(_ context.Context, args []string) error {
	return f.record("google-profile", args)
}
func (f *fakeExec) Guest(context.Context) error { return f.record("guest", nil) }
func (f *fakeExec) Logout(context.Context) error {
	f.authenticated = false
	return f.record("logout", nil)
}
func (f *fakeExec) Status(context.Context) error                   { return f.record("status", nil) }
func (f *fakeExec) Award(_ context.Context, args []string) error   { return f.record("award", args) }
func (f *fakeExec) Toasts(context.Context) error                   { return f.record("toasts", nil) }
func (f *fakeExec) Dismiss(_ context.Context, args []string) error { return f.record("dismiss", args) }
func (f *fakeExec) Reset(context.Context) error                    { return f.record("reset", nil) }

func runWith(exec execIface, lines ...string) string {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, reader, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}

	out := runWith(exec,
		"help",
		"login",
		"help",
		"",
		"award quiz_correct",
		"award bonus 40",
		"toasts",
		"dismiss abc",
		"google tok",
		`google-profile {"Provider": "google"}`,
		"status",
		"reset",
		"logout",
		"guest",
		"register",
		"foobar",
		"exit",
		"status",
	)

	assert.Equal(t, []string{
		"login", "award", "award", "toasts", "dismiss", "google", "google-profile",
		"status", "reset", "logout", "guest", "register",
	}, exec.calls)
	assert.Equal(t, []string{"quiz_correct"}, exec.args[1])
	assert.Equal(t, []string{"bonus", "40"}, exec.args[2])
	assert.Equal(t, []string{"abc"}, exec.args[4])
	assert.Equal(t, []string{`{"Provider":`, `"google"}`}, exec.args[6])

	assert.Contains(t, out, helpSignedOut)
	assert.Contains(t, out, helpSignedIn)
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "daheeh status> ")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{err: errors.New("boom")}

	out := runWith(exec, "status", "toasts", "quit")

	assert.Equal(t, []string{"status", "toasts"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out, "Error: boom"))
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}

	out := runWith(exec, "guest")

	assert.Equal(t, []string{"guest"}, exec.calls)
	assert.NotContains(t, out, "Bye!")
}
