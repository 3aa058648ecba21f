package utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ErrCacheMiss is returned by the Get helpers when the key does not exist
// or Redis is not configured.
var ErrCacheMiss = errors.New("cache miss")

// InitRedis connects to Redis. An empty address leaves RedisClient nil and
// every helper below degrades to a no-op.
func InitRedis(addr, password string, db int) error {
	if addr == "" {
		Log.Info("REDIS_ADDR not set, running without cache")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(Ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	RedisClient = client
	Log.Info("redis connected", zap.String("addr", addr))
	return nil
}

func SetToken(key, value string, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(Ctx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	if RedisClient == nil {
		return "", ErrCacheMiss
	}
	val, err := RedisClient.Get(Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func DeleteToken(keys ...string) error {
	if RedisClient == nil || len(keys) == 0 {
		return nil
	}
	return RedisClient.Del(Ctx, keys...).Err()
}

// ClaimKey sets key only if it is absent. It returns true when this caller
// won the claim. Without Redis every claim succeeds.
func ClaimKey(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if RedisClient == nil {
		return true, nil
	}
	return RedisClient.SetNX(ctx, key, value, ttl).Result()
}

// CacheGetJSON decodes a cached JSON document into dst.
func CacheGetJSON(ctx context.Context, key string, dst interface{}) error {
	if RedisClient == nil {
		return ErrCacheMiss
	}
	raw, err := RedisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// CacheSetJSON stores v as JSON under key.
func CacheSetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, key, raw, ttl).Err()
}

// CacheGeneration reads the counter stored under key, 0 when unset.
// Readers fetch it before loading data and cache under a key that includes it,
// so a write that bumps the counter retires every copy built before it.
func CacheGeneration(ctx context.Context, key string) (int64, error) {
	if RedisClient == nil {
		return 0, nil
	}
	gen, err := RedisClient.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// BumpGeneration increments the counter under key.
func BumpGeneration(ctx context.Context, key string) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Incr(ctx, key).Err()
}
