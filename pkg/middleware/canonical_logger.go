package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

const LogContextKey = "log_context"

// CanonicalLoggerMiddleware emits one log line per request carrying every
// field handlers and usecases added through logger.AddToContext
func CanonicalLoggerMiddleware(log *logger.CanonicalLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logCtx := logger.NewLogContext()
		c.Locals(LogContextKey, logCtx)
		c.SetUserContext(logger.WithLogContext(c.UserContext(), logCtx))

		if id, ok := c.Locals("requestid").(string); ok {
			logCtx.AddField(zap.String(logger.FieldRequestID, id))
		}

		start := time.Now()
		defer func() {
			elapsed := time.Since(start)
			status := c.Response().StatusCode()

			// the raw path carries the bot token, log the route pattern instead
			fields := []zap.Field{
				zap.String("http_method", c.Method()),
				zap.String("route", c.Route().Path),
				zap.Int("status", status),
				zap.Int64("duration_ms", elapsed.Milliseconds()),
			}
			fields = append(fields, logCtx.Fields()...)

			switch {
			case status >= 500:
				log.Error("http_request", fields...)
			case status >= 400:
				log.Info("http_request_client_error", fields...)
			default:
				log.Info("http_request", fields...)
			}
		}()

		return c.Next()
	}
}
