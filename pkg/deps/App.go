package deps

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

type App struct {
	Fiber    *fiber.App
	Logger   *logger.CanonicalLogger
	Database *gorm.DB
}
