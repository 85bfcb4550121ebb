package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"github.com/jhoicas/uniforms-api/internal/application/usecase"
)

var _ usecase.DropdownCache = (*DropdownCache)(nil)

const (
	keyPrefix  = "uniforms:dropdown"
	versionKey = keyPrefix + ":version"
)

// DropdownCache guarda envelopes de dropdown en Redis. Las claves llevan el número de versión
// vigente; Invalidate lo incrementa y las entradas viejas expiran solas por TTL.
type DropdownCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewDropdownCache construye el caché. ttl <= 0 deja las entradas sin expiración.
func NewDropdownCache(client redis.UniversalClient, ttl time.Duration) *DropdownCache {
	if ttl < 0 {
		ttl = 0
	}
	return &DropdownCache{client: client, ttl: ttl}
}

// Version devuelve la versión vigente; sin clave de versión es 0.
func (c *DropdownCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("redis get %s: %w", versionKey, err)
	}
	return version, nil
}

// Get devuelve el envelope guardado para key bajo version; ok=false si no existe.
func (c *DropdownCache) Get(ctx context.Context, version int64, key string) (*dto.Envelope, bool, error) {
	full := versioned(version, key)
	raw, err := c.client.Get(ctx, full).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", full, err)
	}
	var env dto.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("decodificar dropdown: %w", err)
	}
	return &env, true, nil
}

// Set guarda el envelope bajo version. Si la versión avanzó mientras se armaba el envelope,
// la entrada queda huérfana y expira por TTL.
func (c *DropdownCache) Set(ctx context.Context, version int64, key string, env *dto.Envelope) error {
	full := versioned(version, key)
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("codificar dropdown: %w", err)
	}
	if err := c.client.Set(ctx, full, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", full, err)
	}
	return nil
}

// Invalidate descarta todas las entradas cambiando de versión.
func (c *DropdownCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("redis incr %s: %w", versionKey, err)
	}
	return nil
}

func versioned(version int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, key)
}
