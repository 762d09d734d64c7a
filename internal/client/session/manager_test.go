package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
	return NewManager(NewMemoryStore(), WithClock(clock.Now)), clock
}

func validSession(expires time.Time) Session {
	return Session{
		UserID:    "u-1",
		CompanyID: "c-1",
		Role:      RoleOwner,
		Token:     "tok-1",
		TokenType: "Bearer",
		ExpiresAt: expires,
	}
}

func TestManager_IsExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("no session is expired", func(t *testing.T) {
		m, _ := newTestManager()
		assert.True(t, m.IsExpired(ctx))
	})

	t.Run("missing expiry is expired", func(t *testing.T) {
		m, _ := newTestManager()
		require.NoError(t, m.SaveSession(ctx, validSession(time.Time{})))
		assert.True(t, m.IsExpired(ctx))
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		m, clock := newTestManager()
		for _, ago := range []time.Duration{time.Nanosecond, time.Minute, 48 * time.Hour} {
			require.NoError(t, m.SaveSession(ctx, validSession(clock.t.Add(-ago))))
			assert.True(t, m.IsExpired(ctx), "expired %s ago", ago)
		}
	})

	t.Run("future expiry is valid until it passes", func(t *testing.T) {
		m, clock := newTestManager()
		require.NoError(t, m.SaveSession(ctx, validSession(clock.t.Add(time.Hour))))
		assert.False(t, m.IsExpired(ctx))

		clock.t = clock.t.Add(time.Hour)
		assert.True(t, m.IsExpired(ctx))
	})
}

func TestManager_ValidSession(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager()

	_, ok := m.ValidSession(ctx)
	assert.False(t, ok)

	require.NoError(t, m.SaveSession(ctx, validSession(clock.t.Add(time.Minute))))
	s, ok := m.ValidSession(ctx)
	require.True(t, ok)
	assert.NotEmpty(t, s.Token)

	clock.t = clock.t.Add(time.Minute)
	s, ok = m.ValidSession(ctx)
	assert.False(t, ok)
	assert.Empty(t, s.Token, "an expired session hands out no token")
}

func TestManager_SaveSession(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager()

	require.NoError(t, m.SaveSession(ctx, validSession(clock.t.Add(time.Hour))))
	require.NoError(t, m.CacheUserInfo(ctx, UserInfo{Name: "Hana"}))

	next := Session{
		UserID:    "u-2",
		CompanyID: "c-2",
		Role:      RoleCrew,
		Token:     "tok-2",
		ExpiresAt: clock.t.Add(2 * time.Hour),
	}
	require.NoError(t, m.SaveSession(ctx, next))

	got, ok := m.Session(ctx)
	require.True(t, ok)
	assert.Equal(t, next, got, "re-login replaces every field")

	_, cached := m.CachedUserInfo(ctx)
	assert.False(t, cached, "re-login drops cached user info")

	token, ok := m.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok-2", token)
}

func TestManager_SaveSessionRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager()

	s := validSession(clock.t.Add(time.Hour))
	s.Token = ""
	assert.ErrorIs(t, m.SaveSession(ctx, s), ErrInvalidSession)

	s = validSession(clock.t.Add(time.Hour))
	s.Role = "admin"
	assert.ErrorIs(t, m.SaveSession(ctx, s), ErrInvalidSession)

	_, ok := m.Session(ctx)
	assert.False(t, ok)
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager()

	require.NoError(t, m.Clear(ctx), "clearing an empty store")

	require.NoError(t, m.SaveSession(ctx, validSession(clock.t.Add(time.Hour))))
	require.NoError(t, m.Clear(ctx))
	require.NoError(t, m.Clear(ctx))

	_, ok := m.Token(ctx)
	assert.False(t, ok)
	_, ok = m.Session(ctx)
	assert.False(t, ok)
	assert.True(t, m.IsExpired(ctx))
}

func TestManager_UserInfoCache(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestManager()

	assert.ErrorIs(t, m.CacheUserInfo(ctx, UserInfo{Name: "x"}), ErrNotFound)

	require.NoError(t, m.SaveSession(ctx, validSession(clock.t.Add(2*time.Hour))))
	require.NoError(t, m.CacheUserInfo(ctx, UserInfo{Name: "Hana", Position: "kitchen"}))

	info, ok := m.CachedUserInfo(ctx)
	require.True(t, ok)
	assert.Equal(t, "kitchen", info.Position)

	clock.t = clock.t.Add(UserInfoTTL + time.Second)
	_, ok = m.CachedUserInfo(ctx)
	assert.False(t, ok)
}
