package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	redisImageEnv     = "REDIS_TEST_IMAGE"
	defaultRedisImage = "redis:8-alpine"
)

// SetupRedisContainer starts a throwaway Redis and skips the test when Docker is
// unavailable. The returned cleanup is also registered with t.Cleanup and is safe to
// call twice.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	image := os.Getenv(redisImageEnv)
	if image == "" {
		image = defaultRedisImage
	}

	container, err := redismodule.Run(ctx, image)
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if err := client.Close(); err != nil {
				t.Logf("failed to close redis client: %v", err)
			}
			if err := container.Terminate(context.Background()); err != nil {
				t.Logf("failed to terminate redis container: %v", err)
			}
		})
	}
	t.Cleanup(cleanup)

	return client, cleanup
}
