package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/penalties/dto"
	"njangitech_backend/internals/features/penalties/service"
	helper "njangitech_backend/internals/helpers"
)

type PenaltyController struct {
	Svc *service.Service
}

func NewPenaltyController(svc *service.Service) *PenaltyController {
	return &PenaltyController{Svc: svc}
}

// GET /penalties?member_id=&session_id=&tontine_id=&status=
func (ctl *PenaltyController) List(c *fiber.Ctx) error {
	var (
		q   dto.ListPenaltiesQuery
		err error
	)
	if q.MemberID, err = helper.ParseUUIDQuery(c, "member_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if q.SessionID, err = helper.ParseUUIDQuery(c, "session_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if q.TontineID, err = helper.ParseUUIDQuery(c, "tontine_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	q.Status = strings.TrimSpace(c.Query("status"))
	p := helper.ResolvePaging(c, 20, 200)
	q.Offset, q.Limit = p.Offset, p.Limit

	rows, total, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "penalties", rows, &pg)
}

// POST /penalties
func (ctl *PenaltyController) Create(c *fiber.Ctx) error {
	var req dto.CreatePenaltyRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	p, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "penalty created", p)
}

// GET /penalties/:id
func (ctl *PenaltyController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", p)
}

// POST /penalties/:id/pay
func (ctl *PenaltyController) Pay(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.PayPenaltyRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	p, err := ctl.Svc.Pay(c.UserContext(), id, req.Amount)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "penalty payment recorded", p)
}

// POST /penalties/:id/cancel
func (ctl *PenaltyController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p, err := ctl.Svc.Cancel(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "penalty cancelled", p)
}
