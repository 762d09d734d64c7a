package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// UserInfoTTL bounds how long cached profile data is served.
const UserInfoTTL = 30 * time.Minute

// Manager is the single owner of session state. It is safe for concurrent use.
type Manager struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SaveSession replaces whatever was stored, including cached user info.
func (m *Manager) SaveSession(ctx context.Context, s Session) error {
	if s.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidSession)
	}
	if !s.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidSession, s.Role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Save(ctx, &Record{Session: s})
}

// Session returns the stored session, expired or not.
func (m *Manager) Session(ctx context.Context) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.Load(ctx)
	if err != nil {
		return Session{}, false
	}
	return rec.Session, true
}

func (m *Manager) Token(ctx context.Context) (string, bool) {
	s, ok := m.Session(ctx)
	if !ok || s.Token == "" {
		return "", false
	}
	return s.Token, true
}

// IsExpired reports true when there is no session, no known expiry, or the
// expiry has passed. Store failures also count as expired.
func (m *Manager) IsExpired(ctx context.Context) bool {
	_, ok := m.ValidSession(ctx)
	return !ok
}

// ValidSession loads the session and checks its expiry under one lock, so a
// concurrent Clear cannot slip in between the check and the read.
func (m *Manager) ValidSession(ctx context.Context) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.Load(ctx)
	if err != nil {
		return Session{}, false
	}
	s := rec.Session
	if s.Token == "" || s.ExpiresAt.IsZero() || !m.now().Before(s.ExpiresAt) {
		return Session{}, false
	}
	return s, true
}

// Clear removes the session and cached user info. Clearing an empty store is
// not an error.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Delete(ctx)
}

func (m *Manager) CacheUserInfo(ctx context.Context, info UserInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("cache user info: %w", ErrNotFound)
	}
	if err != nil {
		return err
	}

	rec.UserInfo = &info
	rec.UserInfoCachedAt = m.now()
	return m.store.Save(ctx, rec)
}

// CachedUserInfo returns cached profile data younger than UserInfoTTL.
func (m *Manager) CachedUserInfo(ctx context.Context) (UserInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.Load(ctx)
	if err != nil || rec.UserInfo == nil {
		return UserInfo{}, false
	}
	if m.now().Sub(rec.UserInfoCachedAt) > UserInfoTTL {
		return UserInfo{}, false
	}
	return *rec.UserInfo, true
}
