package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/merendatech/merenda-api/internal/application/usecase"
	"github.com/merendatech/merenda-api/pkg/config"
)

var _ usecase.DashboardCache = (*RedisCache)(nil)

// RedisCache cache de agregados do dashboard sobre Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache conecta ao Redis e valida com ping.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar ao Redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// Get devolve o valor da chave; miss retorna ("", nil).
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// Set grava o valor com TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close fecha a conexão com o Redis.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ usecase.DashboardCache = (*NoopCache)(nil)

// NoopCache implementação sem cache, usada quando o Redis não está
// configurado. Todo Get é miss.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, error)              { return "", nil }
func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }
