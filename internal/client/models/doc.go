// Package models defines the client-side data models shared by the identity
// and progression services. Persisted shapes use JSON tags that match the
// documents stored in the key-value store.
package models
