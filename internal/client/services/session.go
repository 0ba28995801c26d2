package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/farag11/daheeh/internal/client/models"
	"github.com/farag11/daheeh/internal/client/repositories/kv"
	"github.com/farag11/daheeh/internal/common"
	"github.com/farag11/daheeh/internal/logging"
)

// SessionManager owns the single active Session and its persistence.
//
// Every mutation replaces the in-memory session first and then writes it
// out. A failed write is logged and returned wrapped in ErrStorageFailure,
// but the in-memory session is kept: it stays the source of truth until the
// next successful write or a restart.
type SessionManager struct {
	store kv.Store
	log   logging.Logger

	// writeMu orders mutations so storage ends with the last session set.
	writeMu sync.Mutex
	mu      sync.RWMutex
	session models.Session
}

func NewSessionManager(store kv.Store, log logging.Logger) *SessionManager {
	return &SessionManager{
		store:   store,
		log:     log.With("component", "session"),
		session: models.NoSession(),
	}
}

// Current returns a copy of the active session.
func (m *SessionManager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.session)
}

// Hydrate rebuilds the session from storage. It never fails: unreadable,
// unknown or inconsistent data yields the empty session.
func (m *SessionManager) Hydrate(ctx context.Context) models.Session {
	s := m.load(ctx)

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	m.log.Debug(ctx, "session hydrated", "mode", s.Mode)
	return copySession(s)
}

func (m *SessionManager) load(ctx context.Context) models.Session {
	rawMode, err := m.store.Get(ctx, common.KeySessionMode)
	if err != nil {
		m.log.Warn(ctx, "failed to read session mode, starting signed out", "error", err)
		return models.NoSession()
	}

	switch models.ParseAuthMode(string(rawMode)) {
	case models.AuthModeGuest:
		return models.GuestSession()

	case models.AuthModeAuthenticated:
		rawUser, err := m.store.Get(ctx, common.KeySessionUser)
		if err != nil {
			m.log.Warn(ctx, "failed to read session user, starting signed out", "error", err)
			return models.NoSession()
		}
		if rawUser == nil {
			m.log.Warn(ctx, "authenticated mode without a stored user, starting signed out")
			return models.NoSession()
		}
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err != nil || u.ID == "" {
			m.log.Warn(ctx, "stored session user is corrupt, starting signed out", "error", err)
			return models.NoSession()
		}
		return models.AuthenticatedSession(u)

	default:
		return models.NoSession()
	}
}

// Establish makes u the authenticated user.
func (m *SessionManager) Establish(ctx context.Context, u models.User) error {
	return m.replace(ctx, models.AuthenticatedSession(u))
}

// ContinueAsGuest starts a guest session with no user.
func (m *SessionManager) ContinueAsGuest(ctx context.Context) error {
	return m.replace(ctx, models.GuestSession())
}

// Logout ends the session and removes the persisted keys.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.replace(ctx, models.NoSession())
}

func (m *SessionManager) replace(ctx context.Context, s models.Session) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	if err := m.persist(ctx, s); err != nil {
		m.log.Error(ctx, "failed to persist session", "mode", s.Mode, "error", err)
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	m.log.Info(ctx, "session changed", "mode", s.Mode)
	return nil
}

// persist writes user and mode together. A nil user and the none mode are
// stored as absent keys, never as sentinels.
func (m *SessionManager) persist(ctx context.Context, s models.Session) error {
	var rawUser []byte
	if s.User != nil {
		b, err := json.Marshal(s.User)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		rawUser = b
	}

	return m.store.WithTx(ctx, func(ctx context.Context, r kv.Repository) error {
		if rawUser == nil {
			if err := r.Delete(ctx, common.KeySessionUser); err != nil {
				return err
			}
		} else if err := r.Set(ctx, common.KeySessionUser, rawUser); err != nil {
			return err
		}

		if s.Mode == models.AuthModeNone {
			return r.Delete(ctx, common.KeySessionMode)
		}
		return r.Set(ctx, common.KeySessionMode, []byte(s.Mode))
	})
}

func copySession(s models.Session) models.Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
