package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	balance "njangitech_backend/internals/features/balance/service"
	"njangitech_backend/internals/features/projects/controller"
	"njangitech_backend/internals/features/projects/service"
)

func ProjectAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewProjectController(service.New(db, balance.New(db)))

	g := r.Group("/projects")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Post("/:id/allocate", ctl.Allocate)
	g.Post("/:id/complete", ctl.Complete)
	g.Post("/:id/cancel", ctl.Cancel)
}
