package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientIPFor(t *testing.T, headers map[string]string) (string, string) {
	t.Helper()
	var ipv4, ipv6 string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		ipv4, ipv6 = GetClientIP(c)
		return nil
	})
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	_, err := app.Test(req)
	require.NoError(t, err)
	return ipv4, ipv6
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		wantIPv4 string
		wantIPv6 string
	}{
		{
			name:     "cloudflare ipv6 with forwarded ipv4",
			headers:  map[string]string{"CF-Connecting-IP": "2001:db8::1", "X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			wantIPv4: "203.0.113.7",
			wantIPv6: "2001:db8::1",
		},
		{
			name:     "cloudflare ipv4 only",
			headers:  map[string]string{"CF-Connecting-IP": "203.0.113.9"},
			wantIPv4: "203.0.113.9",
		},
		{
			name:     "forwarded list picks first of each family",
			headers:  map[string]string{"X-Forwarded-For": "198.51.100.4, 2001:db8::2, 198.51.100.5"},
			wantIPv4: "198.51.100.4",
			wantIPv6: "2001:db8::2",
		},
		{
			name:     "connection address",
			headers:  map[string]string{},
			wantIPv4: "0.0.0.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ipv4, ipv6 := clientIPFor(t, tt.headers)
			assert.Equal(t, tt.wantIPv4, ipv4)
			assert.Equal(t, tt.wantIPv6, ipv6)
		})
	}
}
