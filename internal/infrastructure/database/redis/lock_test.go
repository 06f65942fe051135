package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexmed/clinextract/internal/config"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
)

func newLockClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestReloadLock_AcquireRelease(t *testing.T) {
	client, mr := newLockClient(t)
	ctx := context.Background()

	lock := NewReloadLock(client, "clinex:lock:vocab", 30*time.Second, logging.NewNopLogger())

	ok, err := lock.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("clinex:lock:vocab"))

	require.NoError(t, lock.Release(ctx))
	assert.False(t, mr.Exists("clinex:lock:vocab"))
}

func TestReloadLock_Contention(t *testing.T) {
	client, _ := newLockClient(t)
	ctx := context.Background()

	lock1 := NewReloadLock(client, "clinex:lock:vocab", 30*time.Second, logging.NewNopLogger())
	lock2 := NewReloadLock(client, "clinex:lock:vocab", 30*time.Second, logging.NewNopLogger())

	ok, err := lock1.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = lock2.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lock1.Release(ctx))

	ok, err = lock2.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReloadLock_ReleaseWithoutHold(t *testing.T) {
	client, _ := newLockClient(t)
	lock := NewReloadLock(client, "clinex:lock:vocab", 30*time.Second, logging.NewNopLogger())
	assert.Equal(t, ErrLockNotHeld, lock.Release(context.Background()))
}

func TestReloadLock_ExpiredLockNotReleasedByOldHolder(t *testing.T) {
	client, mr := newLockClient(t)
	ctx := context.Background()

	lock1 := NewReloadLock(client, "clinex:lock:vocab", time.Second, logging.NewNopLogger())
	ok, err := lock1.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// Simulate expiry and re-acquisition by someone else.
	mr.FastForward(2 * time.Second)
	lock2 := NewReloadLock(client, "clinex:lock:vocab", time.Second, logging.NewNopLogger())
	ok, err = lock2.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	err = lock1.Release(ctx)
	assert.Equal(t, ErrLockNotHeld, err)
	// lock2's hold is untouched.
	assert.True(t, mr.Exists("clinex:lock:vocab"))
}
