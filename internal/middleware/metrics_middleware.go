package middleware

import (
	"time"

	"github.com/fadilmartias/careers/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records count and latency of every request, labelled by the
// matched route pattern rather than the raw path.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Method(), route, status, time.Since(start).Seconds())
		return err
	}
}
