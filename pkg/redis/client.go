package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bunnybot/storefront-api/pkg/config"
	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace    = "sf"
	pageCachePrefix = "page_cache"
	sessionPrefix   = "cart_session"
)

// ErrCacheMiss is returned when a page-cache key is absent.
var ErrCacheMiss = errors.New("cache miss")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// Client wraps the redis connection helpers needed by the storefront.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Set stores a string value with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns a string value stored at key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errors.New("redis client not initialized")
	}
	return c.store.Get(ctx, key).Result()
}

// Del removes the provided keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, keys...).Err()
}

// PageCacheKey returns the namespaced key for a rendered page path.
func (c *Client) PageCacheKey(path string) string {
	return c.buildKey(pageCachePrefix, normalizePath(path))
}

// GetPage returns the cached payload for a page path, or ErrCacheMiss.
func (c *Client) GetPage(ctx context.Context, path string) (string, error) {
	payload, err := c.Get(ctx, c.PageCacheKey(path))
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return payload, err
}

// SetPage caches the payload for a page path with the supplied TTL.
func (c *Client) SetPage(ctx context.Context, path, payload string, ttl time.Duration) error {
	return c.Set(ctx, c.PageCacheKey(path), payload, ttl)
}

// PurgePage drops the cache entry for one page path.
func (c *Client) PurgePage(ctx context.Context, path string) error {
	return c.Del(ctx, c.PageCacheKey(path))
}

// CartSessionKey returns the namespaced key binding a storefront session to a commerce cart.
func (c *Client) CartSessionKey(sessionID string) string {
	return c.buildKey(sessionPrefix, sessionID)
}

// BindCartSession stores the commerce cart id for a storefront session.
func (c *Client) BindCartSession(ctx context.Context, sessionID, cartID string, ttl time.Duration) error {
	return c.Set(ctx, c.CartSessionKey(sessionID), cartID, ttl)
}

// LookupCartSession returns the commerce cart id bound to a session, or "" when unbound.
func (c *Client) LookupCartSession(ctx context.Context, sessionID string) (string, error) {
	cartID, err := c.Get(ctx, c.CartSessionKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return cartID, err
}

// ClearCartSession removes the session binding.
func (c *Client) ClearCartSession(ctx context.Context, sessionID string) error {
	return c.Del(ctx, c.CartSessionKey(sessionID))
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	return strings.Join(append([]string{keyNamespace}, parts...), ":")
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
