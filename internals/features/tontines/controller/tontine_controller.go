package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/tontines/dto"
	"njangitech_backend/internals/features/tontines/service"
	helper "njangitech_backend/internals/helpers"
)

type TontineController struct {
	Svc *service.Service
}

func NewTontineController(svc *service.Service) *TontineController {
	return &TontineController{Svc: svc}
}

// GET /tontines?status=
func (ctl *TontineController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.List(c.UserContext(), strings.TrimSpace(c.Query("status")), p.Offset, p.Limit)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "tontines", rows, &pg)
}

// POST /tontines
func (ctl *TontineController) Create(c *fiber.Ctx) error {
	var req dto.CreateTontineRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	t, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "tontine created", t)
}

// GET /tontines/:id
func (ctl *TontineController) Get(c *fiber.Ctx) error {
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

// PATCH /tontines/:id/status
func (ctl *TontineController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateTontineStatusRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	t, err := ctl.Svc.SetStatus(c.UserContext(), id, req.TontineStatus)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "tontine status updated", t)
}

// POST /tontines/:id/members
func (ctl *TontineController) RegisterMember(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.RegisterMemberRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	p, err := ctl.Svc.RegisterMember(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "member registered", p)
}

// GET /tontines/:id/members
func (ctl *TontineController) Participants(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := ctl.Svc.Participants(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "participants", rows, nil)
}

// GET /members/:id/tontines
func (ctl *TontineController) MemberTontines(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := ctl.Svc.MemberTontines(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "member tontines", rows, nil)
}
