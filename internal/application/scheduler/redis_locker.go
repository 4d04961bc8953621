package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLocker Locker sobre redislock.
type RedisLocker struct {
	client *redislock.Client
}

var _ Locker = (*RedisLocker)(nil)

// NewRedisLocker construye el locker sobre el cliente Redis compartido con la caché.
func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// Acquire obtiene el lock sin reintentos. El lock expira solo a los ttl si el proceso muere.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrLockNotObtained
		}
		return nil, err
	}
	return func() {
		// contexto propio: el del job puede estar cancelado
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = lock.Release(ctx)
	}, nil
}
