package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/projects/dto"
	"njangitech_backend/internals/features/projects/service"
	helper "njangitech_backend/internals/helpers"
)

type ProjectController struct {
	Svc *service.Service
}

func NewProjectController(svc *service.Service) *ProjectController {
	return &ProjectController{Svc: svc}
}

// GET /projects?tontine_id=&status=
func (ctl *ProjectController) List(c *fiber.Ctx) error {
	tontineID, err := helper.ParseUUIDQuery(c, "tontine_id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctl.Svc.List(c.UserContext(), dto.ListProjectsQuery{
		TontineID: tontineID,
		Status:    strings.TrimSpace(c.Query("status")),
		Offset:    p.Offset,
		Limit:     p.Limit,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "projects", rows, &pg)
}

// POST /projects
func (ctl *ProjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	p, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "project created", p)
}

// GET /projects/:id
func (ctl *ProjectController) Get(c *fiber.Ctx) error {
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

// POST /projects/:id/allocate {"amount": "..."}
func (ctl *ProjectController) Allocate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.AllocateFundsRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	p, err := ctl.Svc.AllocateFunds(c.UserContext(), id, req.Amount)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "funds allocated", p)
}

func (ctl *ProjectController) Complete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p, err := ctl.Svc.Complete(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "project completed", p)
}

func (ctl *ProjectController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p, err := ctl.Svc.Cancel(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "project cancelled", p)
}
