package healthControllers

import (
	"context"
	"time"

	"sellinginfinity/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	db *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

func (ctl *Controller) Health(c *fiber.Ctx) error {
	sqlDB, err := ctl.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, middleware.CodeStoreUnavailable, "database unreachable")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{"time": time.Now().UTC()})
}
