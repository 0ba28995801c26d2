package models

import (
	"strings"
	"time"
)

// Provider identifies where a User's identity came from.
type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
)

// User is the identity visible to the session. It never carries a
// password hash.
type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Provider    Provider `json:"provider"`
}

// StoredCredential is the on-device record for one email/password account,
// keyed by normalized email. ID and Email never change after signup.
type StoredCredential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash []byte    `json:"passwordHash"`
	Salt         []byte    `json:"salt,omitempty"`
	Hasher       string    `json:"hasher,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User projects the credential onto the session-visible identity.
func (c *StoredCredential) User() User {
	return User{
		ID:          c.ID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		Provider:    ProviderEmail,
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultDisplayName returns the trimmed explicit name, or the local part
// of the email when the name is blank.
func DefaultDisplayName(explicit, email string) string {
	if name := strings.TrimSpace(explicit); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
