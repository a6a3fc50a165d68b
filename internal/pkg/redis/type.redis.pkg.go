package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// NilType is returned by go-redis when a key does not exist.
const NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	DB       int
	PoolSize int
}

type IRedis interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	DelByPrefix(ctx context.Context, prefix string) error
	Lock(ctx context.Context, key string, ttl time.Duration) (*Lock, error)
	Ping(ctx context.Context) error
	Close() error
}

// Client wraps one go-redis pool. Client is set by Setup and never replaced.
type Client struct {
	Client *_redis.Client
	ctx    context.Context
	cancel context.CancelFunc
}
