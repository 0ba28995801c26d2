package models

// AuthMode is the kind of the active session.
type AuthMode string

const (
	AuthModeNone          AuthMode = "none"
	AuthModeGuest         AuthMode = "guest"
	AuthModeAuthenticated AuthMode = "authenticated"
)

// ParseAuthMode maps a persisted mode to an AuthMode. Only the two
// persistable modes are accepted; anything else is AuthModeNone.
func ParseAuthMode(s string) AuthMode {
	switch AuthMode(s) {
	case AuthModeGuest, AuthModeAuthenticated:
		return AuthMode(s)
	default:
		return AuthModeNone
	}
}

// Session is the single process-wide active identity. User is non-nil
// exactly when Mode is AuthModeAuthenticated.
type Session struct {
	Mode AuthMode
	User *User
}

func NoSession() Session {
	return Session{Mode: AuthModeNone}
}

func GuestSession() Session {
	return Session{Mode: AuthModeGuest}
}

func AuthenticatedSession(u User) Session {
	return Session{Mode: AuthModeAuthenticated, User: &u}
}

func (s Session) IsAuthenticated() bool {
	return s.Mode == AuthModeAuthenticated && s.User != nil
}
