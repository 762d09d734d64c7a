package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleRecord() *Record {
	return &Record{
		Session: Session{
			UserID:    "u-1",
			CompanyID: "c-1",
			Role:      RoleCrew,
			Token:     "tok",
			TokenType: "Bearer",
			ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		},
		UserInfo: &UserInfo{Name: "Sora", Post: "part_timer"},
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	store := NewFileStore(path)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	rec := sampleRecord()
	require.NoError(t, store.Save(ctx, rec))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec.Session.UserID, got.Session.UserID)
	assert.Equal(t, rec.Session.Role, got.Session.Role)
	assert.True(t, rec.Session.ExpiresAt.Equal(got.Session.ExpiresAt))
	require.NotNil(t, got.UserInfo)
	assert.Equal(t, "Sora", got.UserInfo.Name)

	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session: [unclosed"), 0o600))

	m := NewManager(NewFileStore(path))
	assert.True(t, m.IsExpired(context.Background()), "unreadable credentials fail closed")
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, "cli", 0)

	t.Run("load from empty store", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		rec := sampleRecord()
		require.NoError(t, store.Save(ctx, rec))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, rec.Session.Token, got.Session.Token)
		assert.Equal(t, "part_timer", got.UserInfo.Post)
	})

	t.Run("ttl follows session expiry", func(t *testing.T) {
		ttl := mr.TTL("shift:session:cli")
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)
	})

	t.Run("expired session is not kept", func(t *testing.T) {
		rec := sampleRecord()
		rec.Session.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, store.Save(ctx, rec))
		assert.False(t, mr.Exists("shift:session:cli"))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleRecord()))
		require.NoError(t, store.Delete(ctx))
		require.NoError(t, store.Delete(ctx))
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisStore_SharedBetweenManagers(t *testing.T) {
	ctx := context.Background()
	_, client := setupTestRedis(t)

	a := NewManager(NewRedisStore(client, "shared", time.Hour))
	b := NewManager(NewRedisStore(client, "shared", time.Hour))

	s := sampleRecord().Session
	require.NoError(t, a.SaveSession(ctx, s))
	assert.False(t, b.IsExpired(ctx))

	require.NoError(t, b.Clear(ctx))
	assert.True(t, a.IsExpired(ctx))
}

func TestRedisStore_UsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewManager(NewRedisStore(client, "clock", 0, WithRedisClock(clock)), WithClock(clock))

	s := sampleRecord().Session
	s.ExpiresAt = now.Add(time.Hour)
	require.NoError(t, m.SaveSession(ctx, s))

	require.True(t, mr.Exists("shift:session:clock"))
	assert.Equal(t, time.Hour, mr.TTL("shift:session:clock"))
	assert.False(t, m.IsExpired(ctx))
}
