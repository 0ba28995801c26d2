// Package services contains the client's application services. This file
// implements the local credential store: email/password signup and login
// against on-device storage, plus Google sign-in from an external assertion.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/farag11/daheeh/internal/client/identity"
	"github.com/farag11/daheeh/internal/client/models"
	"github.com/farag11/daheeh/internal/client/repositories/kv"
	"github.com/farag11/daheeh/internal/common"
	"github.com/farag11/daheeh/internal/cryptox"
	"github.com/farag11/daheeh/internal/logging"
	"github.com/google/uuid"
)

// MinPasswordLength is counted in runes.
const MinPasswordLength = 6

// googleIDPrefix namespaces users created from Google assertions.
const googleIDPrefix = "google_"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService registers and authenticates users without a server.
//
// Contract:
//   - Signup: validate, reject duplicates, store a salted digest, sign in.
//   - Login: validate, look up by normalized email, verify, sign in.
//   - LoginWithGoogle: sign in from an already verified assertion; never
//     reads or writes password records.
//
// Failures are the sentinel errors in errors.go; match them with errors.Is.
type AuthService interface {
	Signup(ctx context.Context, email, password, displayName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	LoginWithGoogle(ctx context.Context, a identity.Assertion) (*models.User, error)
}

// authService is the AuthService backed by the key-value store.
type authService struct {
	store    kv.Store
	sessions *SessionManager
	hasher   cryptox.Hasher
	log      logging.Logger
}

// NewAuthService binds the credential store to its storage, the session it
// signs users into, and the hasher used for new accounts.
func NewAuthService(store kv.Store, sessions *SessionManager, hasher cryptox.Hasher, log logging.Logger) AuthService {
	return &authService{
		store:    store,
		sessions: sessions,
		hasher:   hasher,
		log:      log.With("component", "auth"),
	}
}

func (a *authService) Signup(ctx context.Context, email, password, displayName string) (*models.User, error) {
	normalized := models.NormalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return nil, ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	key := common.CredentialKey(normalized)

	// cheap pre-check so a duplicate does not pay for a hash
	existing, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, a.storageFailure(ctx, "signup lookup", err)
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	hash, err := a.hasher.Hash(pw, salt)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := models.StoredCredential{
		ID:           uuid.NewString(),
		Email:        normalized,
		DisplayName:  models.DefaultDisplayName(displayName, normalized),
		PasswordHash: hash,
		Salt:         salt,
		Hasher:       a.hasher.Name(),
		CreatedAt:    time.Now().UTC(),
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("encode credential: %w", err)
	}

	err = a.store.WithTx(ctx, func(ctx context.Context, r kv.Repository) error {
		current, err := r.Get(ctx, key)
		if err != nil {
			return err
		}
		if current != nil {
			return ErrAccountExists
		}
		return r.Set(ctx, key, raw)
	})
	if errors.Is(err, ErrAccountExists) {
		return nil, ErrAccountExists
	}
	if err != nil {
		return nil, a.storageFailure(ctx, "signup write", err)
	}

	a.log.Info(ctx, "account created", "user_id", cred.ID, "hasher", cred.Hasher)
	return a.signIn(ctx, cred.User())
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	normalized := models.NormalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	raw, err := a.store.Get(ctx, common.CredentialKey(normalized))
	if err != nil {
		return nil, a.storageFailure(ctx, "login lookup", err)
	}
	if raw == nil {
		// spend comparable time so absence is not obvious from latency
		_, _ = a.hasher.Hash(pw, common.GenerateRandByteArray(cryptox.SaltSize))
		return nil, ErrAccountNotFound
	}

	var cred models.StoredCredential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return nil, a.storageFailure(ctx, "login decode", fmt.Errorf("%w: %v", common.ErrCorruptRecord, err))
	}

	hasher, err := a.hasherFor(cred.Hasher)
	if err != nil {
		return nil, a.storageFailure(ctx, "login hasher", err)
	}
	ok, err := hasher.Verify(pw, cred.Salt, cred.PasswordHash)
	if err != nil {
		return nil, a.storageFailure(ctx, "login verify", fmt.Errorf("%w: %v", common.ErrCorruptRecord, err))
	}
	if !ok {
		a.log.Info(ctx, "login rejected", "user_id", cred.ID)
		return nil, ErrWrongPassword
	}

	return a.signIn(ctx, cred.User())
}

func (a *authService) LoginWithGoogle(ctx context.Context, assertion identity.Assertion) (*models.User, error) {
	if err := assertion.Validate(); err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(assertion.Email)
	u := models.User{
		ID:          googleIDPrefix + assertion.Subject,
		Email:       email,
		DisplayName: models.DefaultDisplayName(assertion.Name, email),
		Provider:    models.ProviderGoogle,
	}
	return a.signIn(ctx, u)
}

// signIn establishes the session. The account itself is already durable, so
// a failed session write is only logged.
func (a *authService) signIn(ctx context.Context, u models.User) (*models.User, error) {
	if err := a.sessions.Establish(ctx, u); err != nil {
		a.log.Warn(ctx, "signed in but session was not persisted", "user_id", u.ID, "error", err)
	} else {
		a.log.Info(ctx, "signed in", "user_id", u.ID, "provider", u.Provider)
	}
	return &u, nil
}

// hasherFor resolves the hasher recorded on a credential. Records without a
// name predate salting and use the plain SHA-256 digest.
func (a *authService) hasherFor(name string) (cryptox.Hasher, error) {
	switch name {
	case a.hasher.Name():
		return a.hasher, nil
	case "":
		return cryptox.SHA256Hasher{}, nil
	default:
		return cryptox.Lookup(name)
	}
}

func (a *authService) storageFailure(ctx context.Context, op string, err error) error {
	a.log.Error(ctx, "credential storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, op, err)
}
