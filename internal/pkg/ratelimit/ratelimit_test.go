package ratelimit

import (
	"net"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentaqr/dashboard/internal/pkg/cache"
)

func newLimitedApp(storage fiber.Storage, max int) *fiber.App {
	app := fiber.New()
	app.Post("/t/:code", New(Config{Max: max, Expiration: time.Minute, Storage: storage}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestLimiterInMemory(t *testing.T) {
	app := newLimitedApp(nil, 2)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/t/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/t/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// other codes have their own budget
	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/t/xyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestNewStorageUsesCacheAddress(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	_, err = strconv.Atoi(port)
	require.NoError(t, err)
	require.NotEmpty(t, host)

	storage := NewStorage()
	t.Cleanup(func() { _ = storage.Close() })

	app := newLimitedApp(storage, 1)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/t/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/t/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	mr.Select(storageDatabase)
	assert.NotEmpty(t, mr.Keys(), "limiter counters should live in the limiter database")
}
