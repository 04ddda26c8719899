package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	"njangitech_backend/internals/features/sessions/controller"
	"njangitech_backend/internals/features/sessions/service"
)

func SessionAdminRoutes(r fiber.Router, db *gorm.DB, rules configs.Rules) {
	ctl := controller.NewSessionController(service.New(db, rules))

	g := r.Group("/sessions")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/attendance", ctl.AttendanceSheet)
	g.Post("/:id/attendance", ctl.RecordAttendance)
	g.Post("/:id/save-meeting", ctl.SaveMeeting)
	g.Post("/:id/close", ctl.Close)
	g.Post("/:id/cancel", ctl.Cancel)
}
