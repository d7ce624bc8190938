package redis

import (
	"fmt"

	"report-runtime/config"
	"report-runtime/config/conn"
	"report-runtime/pkg/redis"
)

var client conn.Singleton[redis.IRedis]

// Connect opens the saved-state Redis client once per process.
func Connect(cfg config.RedisConfig) (redis.IRedis, error) {
	return client.Connect(func() (redis.IRedis, error) {
		c, err := redis.New(redis.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		return c, nil
	})
}

func Disconnect() error {
	return client.Close(func(c redis.IRedis) error { return c.Close() })
}
