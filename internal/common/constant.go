// Package common contains shared constants, sentinel errors and small helpers
// used across the daheeh client packages.
package common

// Persisted key-value entries. KeySessionMode holds a bare mode string;
// every other value is a JSON document.
const (
	// KeySessionUser holds the serialized models.User of the active session.
	// Absent when no authenticated user is signed in.
	KeySessionUser = "session.user"

	// KeySessionMode holds "authenticated" or "guest". Absent means no session.
	KeySessionMode = "session.mode"

	// KeyCredentialPrefix prefixes one StoredCredential per normalized email.
	KeyCredentialPrefix = "credentials."

	// KeyProgressionState holds the serialized models.GamificationState.
	KeyProgressionState = "progression.state"
)

// CredentialKey returns the storage key for an already normalized email.
func CredentialKey(normalizedEmail string) string {
	return KeyCredentialPrefix + normalizedEmail
}
