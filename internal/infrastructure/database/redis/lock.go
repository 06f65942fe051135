package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
)

var (
	ErrLockNotAcquired = apperrors.New(apperrors.ErrCodeConflict, "failed to acquire lock")
	ErrLockNotHeld     = apperrors.New(apperrors.ErrCodeValidation, "lock not held by this owner")
)

// releaseScript deletes the lock key only when it still holds our token, so
// an expired lock re-acquired by another process is never released by us.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// ReloadLock serialises vocabulary reloads across processes. Only one holder
// may run a reload at a time; others fail fast.
type ReloadLock struct {
	client *Client
	logger logging.Logger
	key    string
	token  string
	ttl    time.Duration
}

// NewReloadLock builds a lock on key with the given TTL. The TTL bounds how
// long a crashed holder can block other processes.
func NewReloadLock(client *Client, key string, ttl time.Duration, log logging.Logger) *ReloadLock {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ReloadLock{
		client: client,
		logger: log,
		key:    key,
		ttl:    ttl,
	}
}

// TryAcquire attempts to take the lock without waiting. It returns false when
// another holder has it.
func (l *ReloadLock) TryAcquire(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "lock acquire failed")
	}
	if !ok {
		return false, nil
	}
	l.token = token
	l.logger.Debug("acquired reload lock", logging.String("key", l.key))
	return true, nil
}

// Release frees the lock if this instance still holds it.
func (l *ReloadLock) Release(ctx context.Context) error {
	if l.token == "" {
		return ErrLockNotHeld
	}
	res, err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Result()
	if err != nil && err != redis.Nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "lock release failed")
	}
	l.token = ""
	if n, _ := res.(int64); n == 0 {
		return ErrLockNotHeld
	}
	l.logger.Debug("released reload lock", logging.String("key", l.key))
	return nil
}
