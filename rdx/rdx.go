package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared Redis client. Callers must tolerate a nil or
// unreachable connection: caching is best effort.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable at %s, caching disabled: %v", addr, err)
	}
}

func Available() bool {
	return Conn != nil
}

const revokedPrefix = "revoked:"

// RevokeToken blacklists a token ID until its natural expiry.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !Available() || ttl <= 0 {
		return nil
	}
	return Conn.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

func IsTokenRevoked(ctx context.Context, jti string) bool {
	if !Available() || jti == "" {
		return false
	}
	val, err := Conn.Get(ctx, revokedPrefix+jti).Result()
	return err == nil && val != ""
}

// InvalidateCache drops a cached catalogue entry after an admin write.
func InvalidateCache(ctx context.Context, key string) {
	if Available() {
		_ = Conn.Del(ctx, key).Err()
	}
}
