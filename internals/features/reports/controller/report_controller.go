package controller

import (
	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/reports/service"
	helper "njangitech_backend/internals/helpers"
)

type ReportController struct {
	Svc *service.Service
}

func NewReportController(svc *service.Service) *ReportController {
	return &ReportController{Svc: svc}
}

// GET /tontines/:id/balance
func (ctl *ReportController) Balance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.TontineBalance(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

// GET /tontines/:id/dashboard
func (ctl *ReportController) Dashboard(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.TontineDashboard(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

// GET /members/:id/situation
func (ctl *ReportController) MemberSituation(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.MemberSituation(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

// GET /sessions/:id/report
func (ctl *ReportController) SessionReport(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.SessionReport(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

// GET /dashboard
func (ctl *ReportController) AssociationDashboard(c *fiber.Ctx) error {
	res, err := ctl.Svc.AssociationDashboard(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}
