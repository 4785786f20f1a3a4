package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis and pings it. Unlike the Postgres pool a
// failed ping is returned to the caller, since account holds cannot run
// without the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	slog.Info("Redis connection established", slog.String("addr", addr))
	return rdb, nil
}
