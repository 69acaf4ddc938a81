package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/piazza-service/internal/repo"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedis(t *testing.T) (context.Context, *repo.Redis) {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	addr, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	r := repo.NewRedis(addr)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Ping(ctx))
	return ctx, r
}

func TestRedisAllowWindow(t *testing.T) {
	ctx, r := newRedis(t)

	ok, err := r.Allow(ctx, "rl:login:1.2.3.4", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := r.C.TTL(ctx, "rl:login:1.2.3.4").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "counter created without a ttl")

	ok, _ = r.Allow(ctx, "rl:login:1.2.3.4", 2, time.Minute)
	assert.True(t, ok)
	ok, _ = r.Allow(ctx, "rl:login:1.2.3.4", 2, time.Minute)
	assert.False(t, ok)

	ttl, err = r.C.TTL(ctx, "rl:login:1.2.3.4").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "incr dropped the ttl")
}

func TestRedisAllowWindowResets(t *testing.T) {
	ctx, r := newRedis(t)

	ok, err := r.Allow(ctx, "rl:short", 1, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = r.Allow(ctx, "rl:short", 1, time.Second)
	assert.False(t, ok)

	require.Eventually(t, func() bool {
		ok, err := r.Allow(ctx, "rl:short", 1, time.Second)
		return err == nil && ok
	}, 5*time.Second, 200*time.Millisecond)
}
