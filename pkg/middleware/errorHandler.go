package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/wrapper"
)

// ErrorHandler answers unhandled errors with a Bot API failure envelope
func ErrorHandler(log *logger.CanonicalLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		log.HTTPError(c.Method(), c.Route().Path, code, err)

		res := wrapper.ResponseFailed(code, err.Error())
		return c.Status(code).JSON(res)
	}
}
