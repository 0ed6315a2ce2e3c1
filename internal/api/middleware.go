package api

import (
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const headerRequestID = "X-Request-ID"

// DomainGuard only lets through browser calls from allowed origins. Requests
// without Origin are accepted when they hit the service on a local host.
func DomainGuard(logger *zap.Logger, allowed []string, localHosts []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		host := c.Hostname()

		if origin == "" {
			for _, lh := range localHosts {
				if strings.Contains(host, lh) {
					c.Set(fiber.HeaderAccessControlAllowOrigin, "http://"+localHosts[0])
					return c.Next()
				}
			}
			logger.Warn("api.origin_missing", zap.String("host", host))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso no autorizado"})
		}

		if !slices.Contains(allowed, origin) {
			logger.Warn("api.origin_rejected", zap.String("origin", origin))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Dominio no permitido"})
		}

		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		return c.Next()
	}
}

// RequestLogger tags every request with an id and writes one access log line.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(headerRequestID, id)

		start := time.Now()
		err := c.Next()

		logger.Info("api.request",
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)))
		return err
	}
}
