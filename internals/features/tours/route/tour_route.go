package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	balance "njangitech_backend/internals/features/balance/service"
	"njangitech_backend/internals/features/tours/controller"
	"njangitech_backend/internals/features/tours/service"
)

func TourAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTourController(service.New(db, balance.New(db)))

	g := r.Group("/tours")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Assign)
	g.Get("/:id", ctl.Get)

	r.Get("/tontines/:id/eligible-beneficiaries", ctl.Eligible)
}
