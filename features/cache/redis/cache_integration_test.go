package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testRedisClient *redis.Client
	skipIntegration bool
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	var (
		container    testcontainers.Container
		containerErr error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("docker not available: %v", r)
			}
		}()
		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections"),
			},
			Started: true,
		})
	}()

	if containerErr != nil {
		fmt.Printf("Docker not available, integration tests will be skipped: %v\n", containerErr)
		skipIntegration = true
	} else if endpoint, err := container.Endpoint(ctx, ""); err != nil {
		fmt.Printf("Failed to get container endpoint: %v\n", err)
		skipIntegration = true
	} else {
		testRedisClient = redis.NewClient(&redis.Options{Addr: endpoint})
		if err := testRedisClient.Ping(ctx).Err(); err != nil {
			fmt.Printf("Failed to ping redis: %v\n", err)
			skipIntegration = true
		}
	}

	code := m.Run()

	if testRedisClient != nil {
		_ = testRedisClient.Close()
	}
	if container != nil {
		_ = container.Terminate(ctx)
	}
	os.Exit(code)
}

func getRedis(t *testing.T) *redis.Client {
	t.Helper()
	if skipIntegration {
		t.Skip("Docker not available")
	}
	require.NoError(t, testRedisClient.FlushDB(context.Background()).Err())
	return testRedisClient
}

func TestCacheRoundTrip(t *testing.T) {
	rdb := getRedis(t)
	ctx := context.Background()
	c, err := New(rdb, Options{TTL: time.Minute})
	require.NoError(t, err)

	_, ok, err := c.Get(ctx, "es:hello")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "es:hello", "hola"))
	v, ok, err := c.Get(ctx, "es:hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hola", v)

	ttl, err := rdb.TTL(ctx, DefaultPrefix+"es:hello").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Delete(ctx, "es:hello"))
	_, ok, err = c.Get(ctx, "es:hello")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachePrefixIsolation(t *testing.T) {
	rdb := getRedis(t)
	ctx := context.Background()
	a, err := New(rdb, Options{Prefix: "a:"})
	require.NoError(t, err)
	b, err := New(rdb, Options{Prefix: "b:"})
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, "k", "from a"))
	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer func() { _ = rdb.Close() }()
	c, err := New(rdb, Options{})
	require.NoError(t, err)

	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "k", "v"))
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
	_, err = New(redis.NewClient(&redis.Options{}), Options{TTL: -time.Second})
	assert.Error(t, err)
}
