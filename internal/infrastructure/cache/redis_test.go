package cache_test

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Repuestos-api/pkg/config"
)

// ─── Fake de Redis ───────────────────────────────────────────────────────────

// memRedis implementa solo los comandos que usa ProjectionCache; el resto entra en pánico
// por la interfaz embebida nil.
type memRedis struct {
	redis.Cmdable
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	fail error
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	if m.fail != nil {
		cmd.SetErr(m.fail)
		return cmd
	}
	v, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx, "set", key)
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	m.ttls[key] = ttl
	cmd.SetVal("OK")
	return cmd
}

func (m *memRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewIntCmd(ctx, "incr", key)
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	cmd.SetVal(n)
	return cmd
}

type payload struct{ Total int }

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestKey_IncluyeGeneracion(t *testing.T) {
	assert.Equal(t, "repuestos:proj:3:dashboard:abc", cache.Key(3, "dashboard:abc"))
}

func TestProjectionCache_GuardaYLee(t *testing.T) {
	ctx := context.Background()
	rdb := newMemRedis()
	c := cache.NewProjectionCache(rdb, time.Minute, nil)

	var got payload
	hit, gen, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Set(ctx, gen, "k", payload{Total: 7}))
	assert.Equal(t, time.Minute, rdb.ttls[cache.Key(0, "k")])

	hit, _, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.Total)
}

func TestProjectionCache_InvalidarDescartaEntradas(t *testing.T) {
	ctx := context.Background()
	c := cache.NewProjectionCache(newMemRedis(), time.Minute, nil)

	require.NoError(t, c.Set(ctx, 0, "k", payload{Total: 7}))
	require.NoError(t, c.Invalidate(ctx))

	var got payload
	hit, gen, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), gen)
}

// Un movimiento confirmado entre el miss y el Set no debe dejar el valor viejo visible.
func TestProjectionCache_InvalidacionEntreGetYSet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewProjectionCache(newMemRedis(), time.Minute, nil)

	var got payload
	hit, gen, err := c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	require.False(t, hit)

	c.MovementRecorded(ctx, entity.MovementRequest{PartID: "A-100"}, &inventory.MovementResult{})
	require.NoError(t, c.Set(ctx, gen, "dashboard", payload{Total: 0}))

	hit, _, err = c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.False(t, hit, "el resultado previo al movimiento no debe servirse")
}

func TestProjectionCache_RechazoNoInvalida(t *testing.T) {
	ctx := context.Background()
	c := cache.NewProjectionCache(newMemRedis(), time.Minute, nil)
	require.NoError(t, c.Set(ctx, 0, "k", payload{Total: 3}))

	c.MovementRejected(ctx, entity.MovementRequest{PartID: "A-100"}, assert.AnError)

	var got payload
	hit, _, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestProjectionCache_ErrorDeRedis(t *testing.T) {
	rdb := newMemRedis()
	rdb.fail = assert.AnError
	c := cache.NewProjectionCache(rdb, time.Minute, nil)

	var got payload
	_, _, err := c.Get(context.Background(), "k", &got)
	assert.ErrorIs(t, err, assert.AnError)
}

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/cache/...
func TestProjectionCache_RedisReal(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	client, err := cache.NewClient(ctx, config.RedisConfig{Addr: addr, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		_ = client.Close()
	})

	c := cache.NewProjectionCache(client, time.Minute, nil)

	var got payload
	_, gen, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, "k", payload{Total: 7}))

	hit, _, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.Total)

	require.NoError(t, c.Invalidate(ctx))
	hit, _, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestProjectionCache_AltaDeRepuestoInvalida(t *testing.T) {
	ctx := context.Background()
	c := cache.NewProjectionCache(newMemRedis(), time.Minute, nil)
	require.NoError(t, c.Set(ctx, 0, "k", payload{Total: 3}))

	c.PartCreated(ctx, &entity.Part{ID: "A-100"})

	var got payload
	hit, _, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
