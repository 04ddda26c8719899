package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/members/controller"
	"njangitech_backend/internals/features/members/service"
)

func MemberAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewMemberController(service.New(db))

	g := r.Group("/members")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/status", ctl.UpdateStatus)
}
