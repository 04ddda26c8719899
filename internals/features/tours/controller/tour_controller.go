package controller

import (
	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/tours/dto"
	"njangitech_backend/internals/features/tours/service"
	helper "njangitech_backend/internals/helpers"
)

type TourController struct {
	Svc *service.Service
}

func NewTourController(svc *service.Service) *TourController {
	return &TourController{Svc: svc}
}

// GET /tours?tontine_id=&beneficiary_id=&session_id=
func (ctl *TourController) List(c *fiber.Ctx) error {
	var (
		q   dto.ListToursQuery
		err error
	)
	if q.TontineID, err = helper.ParseUUIDQuery(c, "tontine_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if q.BeneficiaryID, err = helper.ParseUUIDQuery(c, "beneficiary_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if q.SessionID, err = helper.ParseUUIDQuery(c, "session_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 200)
	q.Offset, q.Limit = p.Offset, p.Limit

	rows, total, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "tours", rows, &pg)
}

// POST /tours
func (ctl *TourController) Assign(c *fiber.Ctx) error {
	var req dto.AssignTourRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	t, err := ctl.Svc.AssignTour(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "tour assigned", t)
}

// GET /tours/:id
func (ctl *TourController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	t, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", t)
}

// GET /tontines/:id/eligible-beneficiaries
func (ctl *TourController) Eligible(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.EligibleBeneficiaries(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}
