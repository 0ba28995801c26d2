package services

import (
	"errors"

	"github.com/farag11/daheeh/internal/client/identity"
	"github.com/farag11/daheeh/internal/common"
)

var (
	// Validation errors, always returned before storage is touched.
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordRequired = errors.New("password required")

	// Business outcomes.
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("wrong password")

	ErrInvalidAssertion = identity.ErrInvalidAssertion
	ErrStorageFailure   = common.ErrStorageFailure
)
