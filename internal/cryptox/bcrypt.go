package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher ignores the external salt; bcrypt generates and embeds its own.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher uses bcrypt.DefaultCost when cost is zero.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Name() string { return NameBcrypt }

func (h *BcryptHasher) Hash(password, _ []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, h.cost)
}

func (h *BcryptHasher) Verify(password, _ []byte, hash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
