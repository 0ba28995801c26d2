// Package identity turns assertions made by an external identity provider
// into the minimal facts the session needs. Signature and audience checks
// belong to the provider SDK that produced the assertion; this package only
// reads what has already been verified.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/markbates/goth"
)

var ErrInvalidAssertion = errors.New("invalid identity assertion")

// Assertion is a verified statement about a Google account.
type Assertion struct {
	Subject string
	Email   string
	Name    string
}

// Validate checks the fields the session depends on.
func (a Assertion) Validate() error {
	if strings.TrimSpace(a.Subject) == "" {
		return fmt.Errorf("%w: missing subject", ErrInvalidAssertion)
	}
	return nil
}

var googleIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

// GoogleClaims is the subset of Google ID token claims that is read.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// FromIDToken reads the claims of a Google ID token whose signature was
// already checked by the sign-in SDK.
func FromIDToken(raw string) (Assertion, error) {
	var claims GoogleClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Assertion{}, fmt.Errorf("%w: %v", ErrInvalidAssertion, err)
	}
	if _, ok := googleIssuers[claims.Issuer]; !ok {
		return Assertion{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidAssertion, claims.Issuer)
	}

	a := Assertion{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}
	if err := a.Validate(); err != nil {
		return Assertion{}, err
	}
	return a, nil
}

// FromGothUser adapts the result of a goth OAuth flow.
func FromGothUser(u goth.User) (Assertion, error) {
	if u.Provider != "google" {
		return Assertion{}, fmt.Errorf("%w: provider %q", ErrInvalidAssertion, u.Provider)
	}

	name := u.Name
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	a := Assertion{Subject: u.UserID, Email: u.Email, Name: name}
	if err := a.Validate(); err != nil {
		return Assertion{}, err
	}
	return a, nil
}
