package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	"njangitech_backend/internals/features/reports/controller"
	"njangitech_backend/internals/features/reports/service"
)

func ReportAdminRoutes(r fiber.Router, db *gorm.DB, rules configs.Rules) {
	ctl := controller.NewReportController(service.New(db, rules))

	r.Get("/dashboard", ctl.AssociationDashboard)
	r.Get("/tontines/:id/balance", ctl.Balance)
	r.Get("/tontines/:id/dashboard", ctl.Dashboard)
	r.Get("/members/:id/situation", ctl.MemberSituation)
	r.Get("/sessions/:id/report", ctl.SessionReport)
}
