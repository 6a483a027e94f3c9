package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/wrapper"
)

// BotPathParam is the route parameter holding the "bot<token>" path segment
const BotPathParam = "bot"

// BotTokenAuth rejects requests whose path segment is not "bot" followed by
// the configured token
func BotTokenAuth(token string, log *logger.CanonicalLogger) fiber.Handler {
	want := []byte("bot" + token)
	return func(c *fiber.Ctx) error {
		got := []byte(c.Params(BotPathParam))
		if token == "" || subtle.ConstantTimeCompare(got, want) != 1 {
			log.Debug("invalid bot token",
				zap.String("route", c.Route().Path),
				zap.String("ip", c.IP()),
			)
			res := wrapper.ResponseFailed(http.StatusUnauthorized, "Unauthorized")
			return c.Status(res.Code).JSON(res)
		}
		return c.Next()
	}
}
