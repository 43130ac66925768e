// Package redis provides the Redis-backed cache repository
package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config configures the Redis connection
type Config struct {
	Addrs        []string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// KeyPrefix namespaces every key
	KeyPrefix string
}

// CacheRepository implements outbound.CacheRepository on Redis
type CacheRepository struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// NewClient creates a Redis client and verifies the connection
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:           cfg.Addrs,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: 5 * time.Minute,
		PoolTimeout:     10 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis client initialized successfully",
		zap.Strings("addrs", cfg.Addrs),
		zap.Int("db", cfg.DB),
	)

	return client, nil
}

// NewCacheRepository wraps a connected client
func NewCacheRepository(client redis.UniversalClient, keyPrefix string, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{
		client: client,
		prefix: keyPrefix,
		logger: logger.Named("redis-cache"),
	}
}

// Get retrieves a value. Missing keys return outbound.ErrCacheMiss.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, outbound.ErrCacheMiss
	}
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Exists checks if a key exists
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		r.logger.Error("Cache exists check failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return n > 0, nil
}

// Ping checks the connection
func (r *CacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (r *CacheRepository) Close() error {
	return r.client.Close()
}
