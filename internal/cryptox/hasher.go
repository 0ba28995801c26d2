// Package cryptox implements the one-way password digests used by the
// local credential store. Every Hasher is deterministic for a given
// (password, salt) pair, except bcrypt, which embeds its own salt in the
// hash and is therefore checked through Verify only.
package cryptox

import (
	"errors"
	"fmt"
)

// Hasher names recorded next to each stored credential.
const (
	NameArgon2id = "argon2id"
	NameBcrypt   = "bcrypt"
	NameSHA256   = "sha256"
)

// SaltSize is the length of the per-user salt generated at signup.
const SaltSize = 16

var ErrUnknownHasher = errors.New("unknown hasher")

// Hasher turns a password into a storable digest and verifies candidates
// against it.
type Hasher interface {
	Name() string
	Hash(password, salt []byte) ([]byte, error)
	Verify(password, salt, hash []byte) (bool, error)
}

// Lookup returns the hasher registered under name with its default
// parameters.
func Lookup(name string) (Hasher, error) {
	switch name {
	case NameArgon2id:
		return NewArgon2idHasher(DefaultArgon2Params), nil
	case NameBcrypt:
		return NewBcryptHasher(0), nil
	case NameSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}
