package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client

// NewRedis starts an in-process miniredis instance and returns a client
// connected to it. The reconciliation lock lives here during tests.
func NewRedis() *redis.Client {
	if redisConn == nil {
		redisConnOnce.Do(
			func() {
				redisConn = openRedisConn()
			},
		)
	}

	return redisConn
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return conn
}

// ClearRedis drops all keys, releasing any reconciliation lock held by a
// previous scenario.
func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}
