// Package rdx holds the shared Redis connection and small helpers used
// for read-through caching and event pub/sub. All helpers tolerate a nil
// connection so the service degrades to cache-off when Redis is absent.
package rdx

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"posada/globals"
)

var Conn *redis.Client

// Init dials Redis. An empty url leaves caching and event publication
// disabled.
func Init(url string) {
	if url == "" {
		log.Println("REDIS_URL not set; caching disabled")
		return
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL %q: %v; caching disabled", url, err)
		return
	}
	client := redis.NewClient(opts)
	if err := client.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis unreachable: %v; caching disabled", err)
		return
	}
	Conn = client
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string, expiry time.Duration) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, expiry).Err()
}

func RdxDel(keys ...string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Del(globals.Ctx, keys...).Err()
}
