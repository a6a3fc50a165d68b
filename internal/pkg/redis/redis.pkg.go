package redis

import (
	"context"
	"efood-checkout/internal/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// Setup connects to redis. The client is never replaced afterwards; the
// go-redis pool redials dropped connections on its own, and the monitor only
// reports outages.
func Setup(ctx context.Context, config *Config) (*Client, error) {
	client := _redis.NewClient(&_redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Username: config.Username,
		Password: config.Password,
		DB:       config.DB,
		PoolSize: config.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Error.Println(err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	clientCtx, cancel := context.WithCancel(ctx)
	r := &Client{
		Client: client,
		cancel: cancel,
		ctx:    clientCtx,
	}

	go r.monitor(time.Second)

	return r, nil
}

func (r *Client) monitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-r.ctx.Done():
			logger.Info.Println("Redis monitor shutting down...")
			return
		case <-ticker.C:
			err := r.Client.Ping(r.ctx).Err()
			if r.ctx.Err() != nil {
				continue
			}
			switch {
			case err != nil && healthy:
				healthy = false
				logger.Warning.Printf("Redis connection lost: %v. Waiting for the pool to redial...", err)
			case err == nil && !healthy:
				healthy = true
				logger.Info.Println("Reconnected to redis.")
			}
		}
	}
}

func (r *Client) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close stops the monitor and closes the pool.
func (r *Client) Close() error {
	r.cancel()
	return r.Client.Close()
}

// Set stores value as JSON with an expiration time.
func (r *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", key, err)
	}
	if err := r.Client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Get retrieves the raw value of a key. A missing key yields "" and no error.
func (r *Client) Get(ctx context.Context, key string) (string, error) {
	result, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, NilType) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

// Del deletes keys from redis.
func (r *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys %v: %w", keys, err)
	}
	return nil
}

// Expire sets a timeout on a key.
func (r *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if err := r.Client.Expire(ctx, key, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set expiration on key %s: %w", key, err)
	}
	return nil
}

// SetNX stores value only when key is absent and reports whether it did.
func (r *Client) SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode key %s: %w", key, err)
	}
	ok, err := r.Client.SetNX(ctx, key, data, expiration).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx key %s: %w", key, err)
	}
	return ok, nil
}

// DelByPrefix removes every key starting with prefix.
func (r *Client) DelByPrefix(ctx context.Context, prefix string) error {
	iter := r.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan prefix %s: %w", prefix, err)
	}
	return r.Del(ctx, keys...)
}
