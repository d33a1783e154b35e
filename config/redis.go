package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when no address is configured or the server does not answer,
// which leaves the menu cache disabled.
func ConnectRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		logg.Info("REDIS_ADDRESS not set, menu cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		LogError(logg, "config", "ConnectRedis", "ping", addr, err)
		_ = rdb.Close()
		return nil
	}

	logg.WithField("addr", addr).Info("connected to redis")
	return rdb
}
