package middleware

import (
	"strconv"
	"time"

	"quiz-tutor/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per route.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}

		start := time.Now()
		chainErr := resolveError(c, c.Next())

		endpoint := c.Route().Path
		m.RequestCounter.WithLabelValues(
			c.Method(),
			endpoint,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())

		return chainErr
	}
}
