package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/ledger/controller"
	"njangitech_backend/internals/features/ledger/service"
)

func LedgerAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewLedgerController(service.New(db))

	r.Get("/tontines/:id/transactions", ctl.List)
	r.Get("/tontines/:id/transactions/total", ctl.Total)
	r.Post("/tontines/:id/adjustments", ctl.Adjust)
}
