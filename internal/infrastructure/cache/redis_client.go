package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewRedisClient parsea REDIS_URL, arma el cliente y verifica la conexión con Ping.
func NewRedisClient(ctx context.Context, redisURL string, log zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: URL inválida: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 1
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = readTimeout
	opts.WriteTimeout = writeTimeout

	client := redis.NewClient(opts)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Info().Str("addr", opts.Addr).Int("pool_size", opts.PoolSize).Msg("redis conectado")
	return client, nil
}

// Ping verifica que Redis responda dentro de pingTimeout.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
