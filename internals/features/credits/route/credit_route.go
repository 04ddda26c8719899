package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	balance "njangitech_backend/internals/features/balance/service"
	"njangitech_backend/internals/features/credits/controller"
	"njangitech_backend/internals/features/credits/service"
)

func CreditAdminRoutes(r fiber.Router, db *gorm.DB, rules configs.Rules) {
	ctl := controller.NewCreditController(service.New(db, balance.New(db), rules))

	g := r.Group("/credits")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Request)
	g.Post("/refresh-overdue", ctl.RefreshOverdue)
	g.Get("/:id", ctl.Get)
	g.Post("/:id/approve", ctl.Approve)
	g.Post("/:id/reject", ctl.Reject)
	g.Post("/:id/disburse", ctl.Disburse)
	g.Post("/:id/repay", ctl.Repay)

	r.Get("/members/:id/active-credit", ctl.MemberActiveCredit)
}
