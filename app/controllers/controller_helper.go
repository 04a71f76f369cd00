package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// internalError logs err with its handler prefix and answers a generic 500.
func internalError(c *fiber.Ctx, prefix, message string, err error) error {
	log.Errorf("[%s] %s: %v", prefix, message, err)
	return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", message)
}

// GetClientIP determines the actual client IP address considering proxies and dual stack
// Returns both IPv4 and IPv6 addresses if available
func GetClientIP(c *fiber.Ctx) (string, string) {
	// 1. Cloudflare provides the original client IP, X-Forwarded-For may add the other family
	if cfIP := strings.TrimSpace(c.Get("CF-Connecting-IP")); cfIP != "" {
		return splitFamilies(append([]string{cfIP}, splitList(c.Get("X-Forwarded-For"))...))
	}

	// 2. X-Forwarded-For, the first entry is the original client
	if xff := splitList(c.Get("X-Forwarded-For")); len(xff) > 0 {
		ipv4, ipv6 := splitFamilies(xff)
		if ipv4 != "" || ipv6 != "" {
			return ipv4, ipv6
		}
	}

	// 3. No proxy headers, use the connection address
	ipAddr := c.IP()
	realIP := strings.TrimSpace(c.Get("X-Real-IP"))
	switch {
	case strings.HasPrefix(ipAddr, "::ffff:") && strings.Contains(ipAddr, "."):
		// IPv4 mapped into IPv6
		return splitFamilies([]string{strings.TrimPrefix(ipAddr, "::ffff:"), realIP})
	default:
		return splitFamilies([]string{ipAddr, realIP})
	}
}

// splitFamilies picks the first IPv4 and the first IPv6 entry of ips.
func splitFamilies(ips []string) (ipv4, ipv6 string) {
	for _, ip := range ips {
		if ip == "" {
			continue
		}
		if strings.Contains(ip, ":") {
			if ipv6 == "" {
				ipv6 = ip
			}
		} else if ipv4 == "" {
			ipv4 = ip
		}
	}
	return ipv4, ipv6
}

func splitList(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
