package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"boardingpass-service/pkg/logger"
)

const (
	defaultLockKey = "lock:boardingpass:history"
	retryInterval  = 100 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serialises history merges across processes sharing one store
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger logger.Logger
}

// RedisOptions configures the connection and lock key
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

// NewRedisLocker creates a new redis backed locker
func NewRedisLocker(opts RedisOptions, logger logger.Logger) *RedisLocker {
	return NewRedisLockerWithClient(
		redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB}),
		opts.Key, opts.TTL, logger,
	)
}

// NewRedisLockerWithClient creates a locker over an existing client
func NewRedisLockerWithClient(client *redis.Client, key string, ttl time.Duration, logger logger.Logger) *RedisLocker {
	if key == "" {
		key = defaultLockKey
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: client, key: key, ttl: ttl, logger: logger}
}

// Ping checks the connection
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Acquire polls SET NX until the lock is taken or ctx is done.
// The lock expires after the TTL if the holder never releases it.
func (l *RedisLocker) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", l.key, err)
		}
		if ok {
			return l.releaser(token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			l.logger.Error("Failed to release lock", "key", l.key, "error", err)
		}
	}
}

// Close closes the redis client
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
