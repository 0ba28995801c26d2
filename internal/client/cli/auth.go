package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/markbates/goth"

	"github.com/farag11/daheeh/internal/client/identity"
	"github.com/farag11/daheeh/internal/client/models"
	"github.com/farag11/daheeh/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errUsage = errors.New("usage")

// Register prompts for email, password and an optional display name and
// creates a local account. On success the new user is signed in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Display name (empty to use the email)", a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Signup(ctx, email, string(password), name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName)
	return nil
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", u.DisplayName)
	return nil
}

// Google signs in with a Google ID token obtained elsewhere.
func (a *App) Google(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: google <id_token>", errUsage)
	}

	assertion, err := identity.FromIDToken(args[0])
	if err != nil {
		return err
	}

	u, err := a.auth.LoginWithGoogle(ctx, assertion)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in with Google as %s\n", displayName(u))
	return nil
}

// GoogleProfile signs in with the JSON of a goth.User produced by an OAuth
// flow run elsewhere, e.g. {"Provider":"google","UserID":"123","Email":"..."}.
func (a *App) GoogleProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: google-profile <json>", errUsage)
	}

	var gu goth.User
	if err := json.Unmarshal([]byte(strings.Join(args, " ")), &gu); err != nil {
		return fmt.Errorf("%w: %w", identity.ErrInvalidAssertion, err)
	}

	assertion, err := identity.FromGothUser(gu)
	if err != nil {
		return err
	}

	u, err := a.auth.LoginWithGoogle(ctx, assertion)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in with Google as %s\n", displayName(u))
	return nil
}

// Guest continues without an account.
func (a *App) Guest(ctx context.Context) error {
	err := a.sessions.ContinueAsGuest(ctx)
	fmt.Fprintln(a.out, "Continuing as guest")
	return err
}

// Logout ends the session. Progress is kept.
func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out")
	return err
}

func displayName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}
