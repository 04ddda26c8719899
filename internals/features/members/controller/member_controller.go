package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/members/dto"
	"njangitech_backend/internals/features/members/service"
	helper "njangitech_backend/internals/helpers"
)

type MemberController struct {
	Svc *service.Service
}

func NewMemberController(svc *service.Service) *MemberController {
	return &MemberController{Svc: svc}
}

var memberSort = map[string]string{
	"name":      "member_full_name",
	"joined_at": "member_joined_at",
	"created":   "member_created_at",
}

// GET /members?status=&q=&page=&per_page=
func (ctl *MemberController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	q := dto.ListMembersQuery{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("q")),
		Offset: p.Offset,
		Limit:  p.Limit,
	}
	rows, total, err := ctl.Svc.List(c.UserContext(), q, helper.OrderBy(c, memberSort, "name", "asc"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "members", rows, &pg)
}

// POST /members
func (ctl *MemberController) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "member created", m)
}

// GET /members/:id
func (ctl *MemberController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

// PATCH /members/:id
func (ctl *MemberController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateMemberRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "member updated", m)
}

// PATCH /members/:id/status
func (ctl *MemberController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateMemberStatusRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := ctl.Svc.SetStatus(c.UserContext(), id, req.MemberStatus)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "member status updated", m)
}
