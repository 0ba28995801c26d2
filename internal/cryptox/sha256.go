package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
)

// SHA256Hasher digests salt||password. With an empty salt it reproduces the
// plain unsalted digest of older installations, which is why it is kept
// behind the Hasher interface instead of being removed.
type SHA256Hasher struct{}

func (SHA256Hasher) Name() string { return NameSHA256 }

func (SHA256Hasher) Hash(password, salt []byte) ([]byte, error) {
	h := sha256.New()
	h.Write(salt)
	h.Write(password)
	return h.Sum(nil), nil
}

func (s SHA256Hasher) Verify(password, salt, hash []byte) (bool, error) {
	candidate, _ := s.Hash(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1, nil
}
