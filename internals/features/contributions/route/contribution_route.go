package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/contributions/controller"
	"njangitech_backend/internals/features/contributions/service"
)

func ContributionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewContributionController(service.New(db))
	r.Get("/contributions", ctl.List)
}
