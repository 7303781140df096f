package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/storage/redis"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pixelcraft/studio/internal/pkg/config"
)

// Redis databases used by the app. The cache client itself uses DB 0.
const (
	SessionDB = 1
	LimiterDB = 2
)

var client *goredis.Client

// SetupCache connects to the Redis compatible cache server. A failed ping
// is logged but not fatal, the client reconnects on demand.
func SetupCache(cfg *config.Config) {
	client = goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(cfg.CacheHost, cfg.CachePort),
		Password: cfg.CachePassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("[Cache] could not connect to cache server: %v", err)
		return
	}
	log.Infof("[Cache] connected to %s", client.Options().Addr)
}

// GetClient returns the Redis client instance, nil before SetupCache.
func GetClient() *goredis.Client {
	return client
}

// SetClient replaces the client, used by tests.
func SetClient(c *goredis.Client) {
	client = c
}

// Ping reports whether the cache server answers.
func Ping(ctx context.Context) error {
	if client == nil {
		return errors.New("cache not initialized")
	}
	return client.Ping(ctx).Err()
}

// NewStorage returns a fiber storage backed by the same server as the cache
// client, in its own logical database.
func NewStorage(database int) (fiber.Storage, error) {
	if client == nil {
		return nil, errors.New("cache not initialized")
	}
	opts := client.Options()
	host, portStr, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("cache address %q: %w", opts.Addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("cache port %q: %w", portStr, err)
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: opts.Password,
		Database: database,
		Reset:    false,
	}), nil
}

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

// Store is a string key value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisStore struct {
	client *goredis.Client
}

// NewStore wraps a Redis client as a Store.
func NewStore(c *goredis.Client) Store {
	return &redisStore{client: c}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}
