package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis is an in-process Redis server with a connected client.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts the shared server on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return redisMock
}

// Clear removes every key, including locks left by failed scenarios.
func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.TODO()).Err()
}
