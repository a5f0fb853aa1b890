// Package cache guarda en Redis los resultados de las proyecciones del tablero.
//
// Las claves llevan un número de generación; cada movimiento confirmado lo incrementa,
// así que las entradas viejas dejan de leerse y expiran solas por TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

const (
	keyPrefix     = "repuestos:proj"
	generationKey = keyPrefix + ":gen"
)

var (
	_ analytics.Cache            = (*ProjectionCache)(nil)
	_ inventory.MovementObserver = (*ProjectionCache)(nil)
	_ inventory.PartObserver     = (*ProjectionCache)(nil)
)

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// ProjectionCache implementa analytics.Cache e invalida en cada movimiento registrado.
type ProjectionCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewProjectionCache construye la caché. ttl <= 0 usa 5 minutos.
func NewProjectionCache(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *ProjectionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProjectionCache{client: client, ttl: ttl, log: log.Component("cache")}
}

// Key clave física para la generación dada.
func Key(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, gen, key)
}

func (c *ProjectionCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get decodifica en dest el valor guardado y devuelve la generación leída.
// En un miss esa generación es la que debe pasarse a Set.
func (c *ProjectionCache) Get(ctx context.Context, key string, dest any) (bool, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("cache generation: %w", err)
	}
	data, err := c.client.Get(ctx, Key(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug().Str("cache_key", key).Int64("gen", gen).Msg("cache miss")
		return false, gen, nil
	}
	if err != nil {
		return false, gen, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, gen, fmt.Errorf("cache decode: %w", err)
	}
	c.log.Debug().Str("cache_key", key).Int64("gen", gen).Msg("cache hit")
	return true, gen, nil
}

// Set guarda value serializado en JSON bajo la generación gen, la devuelta por Get antes de
// calcular value. Si otra escritura invalidó entretanto, la entrada nace huérfana y expira por TTL.
func (c *ProjectionCache) Set(ctx context.Context, gen int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, Key(gen, key), data, c.ttl).Err()
}

// Invalidate abandona todas las entradas vigentes.
func (c *ProjectionCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *ProjectionCache) MovementRecorded(ctx context.Context, req entity.MovementRequest, _ *inventory.MovementResult) {
	if err := c.Invalidate(ctx); err != nil {
		c.log.Warn().Err(err).Str("part_id", string(req.PartID)).Msg("no se pudo invalidar la caché de proyecciones")
	}
}

// MovementRejected no cambia el ledger; nada que invalidar.
func (c *ProjectionCache) MovementRejected(context.Context, entity.MovementRequest, error) {}

// PartCreated invalida: un repuesto nuevo sin stock ya cuenta en las listas del tablero.
func (c *ProjectionCache) PartCreated(ctx context.Context, part *entity.Part) {
	if err := c.Invalidate(ctx); err != nil {
		c.log.Warn().Err(err).Str("part_id", string(part.ID)).Msg("no se pudo invalidar la caché de proyecciones")
	}
}
