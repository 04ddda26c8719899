package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/penalties/controller"
	"njangitech_backend/internals/features/penalties/service"
)

func PenaltyAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPenaltyController(service.New(db))

	g := r.Group("/penalties")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Post("/:id/pay", ctl.Pay)
	g.Post("/:id/cancel", ctl.Cancel)
}
