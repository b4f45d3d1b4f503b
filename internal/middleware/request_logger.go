package middleware

import (
	"time"

	"quiz-tutor/internal/logger"
	"quiz-tutor/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request identifier in both directions.
const HeaderRequestID = "X-Request-ID"

const requestIDLocal = "request_id"

// RequestLogger assigns a ULID request id and logs one line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := util.RequestIDOrNew(c.Get(HeaderRequestID))
		c.Locals(requestIDLocal, id)
		c.Set(HeaderRequestID, id)

		chainErr := resolveError(c, c.Next())

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Get().Error("Request failed", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Get().Warn("Request rejected", fields...)
		default:
			logger.Get().Info("Request handled", fields...)
		}
		return chainErr
	}
}

// RequestID returns the id assigned by RequestLogger, or "" outside it.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	return id
}
