package memory

import (
	"context"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepository(0)
	defer repo.Close()

	now := time.Now()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	exists, err := repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	// advance past the TTL
	now = now.Add(2 * time.Minute)

	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	exists, err = repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	repo.sweep()
	assert.Empty(t, repo.data)
}

func TestCacheRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepository(time.Hour)
	defer repo.Close()

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}
