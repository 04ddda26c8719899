package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/tontines/controller"
	"njangitech_backend/internals/features/tontines/service"
)

func TontineAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTontineController(service.New(db))

	g := r.Group("/tontines")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id/status", ctl.UpdateStatus)
	g.Get("/:id/members", ctl.Participants)
	g.Post("/:id/members", ctl.RegisterMember)

	r.Get("/members/:id/tontines", ctl.MemberTontines)
}
