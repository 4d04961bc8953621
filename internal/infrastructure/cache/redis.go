package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend backend sobre Redis. Todas las claves llevan el prefijo configurado para que
// Clear solo borre las del panel y no haga FLUSHALL sobre una instancia compartida.
type RedisBackend struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBackend construye el backend. prefix vacío = "painel".
func NewRedisBackend(rdb *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "painel"
	}
	return &RedisBackend{rdb: rdb, prefix: prefix + ":"}
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 50,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func (b *RedisBackend) key(k string) string { return b.prefix + k }

// Get lee la clave; redis.Nil se traduce a miss.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b.rdb == nil {
		return nil, false, ErrBackendClosed
	}
	val, err := b.rdb.Get(ctx, b.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Set escribe con expiración nativa de Redis.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if b.rdb == nil {
		return ErrBackendClosed
	}
	return b.rdb.Set(ctx, b.key(key), value, ttl).Err()
}

// Delete borra la clave.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if b.rdb == nil {
		return ErrBackendClosed
	}
	return b.rdb.Del(ctx, b.key(key)).Err()
}

// Clear borra las claves con el prefijo del panel usando SCAN por lotes.
func (b *RedisBackend) Clear(ctx context.Context) error {
	if b.rdb == nil {
		return ErrBackendClosed
	}
	iter := b.rdb.Scan(ctx, 0, b.prefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := b.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return b.rdb.Del(ctx, batch...).Err()
	}
	return nil
}
