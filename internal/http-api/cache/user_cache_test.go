package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/http-api/dto"
)

func newTestCache(t *testing.T, ttl time.Duration) (UserListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisUserListCache(client, ttl), mr
}

func sampleUsers() []dto.UserResponse {
	modified := dto.NewDate(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	return []dto.UserResponse{
		{
			ID:        "5f1c7a55-0d5f-4b8a-9f42-3c0b1f2e9a77",
			Name:      "Juan Rodriguez",
			Email:     "juan@rodriguez.org",
			Password:  "$2a$10$hash",
			Phones:    []dto.PhoneResponse{{Number: "1234567", CityCode: "1", CountryCode: "57"}},
			Created:   dto.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
			Modified:  &modified,
			LastLogin: dto.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
			Token:     "jwt-token",
			IsActive:  true,
		},
	}
}

func TestUserListCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	users, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, users)
}

func TestUserListCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, sampleUsers()))
	assert.True(t, mr.Exists(userListKey))
	assert.Equal(t, time.Minute, mr.TTL(userListKey))

	users, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleUsers(), users)
}

func TestUserListCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, sampleUsers()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserListCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, sampleUsers()))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(userListKey))

	// invalidating an absent key is not an error
	require.NoError(t, c.Invalidate(ctx))

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestUserListCache_VersionStartsAtZero(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	version, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestUserListCache_SetDropsSnapshotAfterInvalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	// a reader takes the version, then a write lands before it stores its snapshot
	version, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	require.NoError(t, c.Set(ctx, version, sampleUsers()))
	assert.False(t, mr.Exists(userListKey))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// a reader that started after the write may populate the cache
	version, err = c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, version, sampleUsers()))
	assert.True(t, mr.Exists(userListKey))
}

func TestUserListCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(userListKey, "not json"))

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "://bad-url")
	assert.ErrorContains(t, err, "invalid REDIS_URL")

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisClient(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
