package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sharath018/potluck-rsvp-backend/utils"
)

// NewRedis points utils.RedisClient at an in-memory server for the duration
// of the test. Tests using it must not run in parallel.
func NewRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	prev := utils.RedisClient
	utils.RedisClient = client
	t.Cleanup(func() {
		utils.RedisClient = prev
		_ = client.Close()
	})
	return mr
}
