package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/contributions/service"
	helper "njangitech_backend/internals/helpers"
)

type ContributionController struct {
	Svc *service.Service
}

func NewContributionController(svc *service.Service) *ContributionController {
	return &ContributionController{Svc: svc}
}

// GET /contributions?tontine_id=&session_id=&member_id=&status=
func (ctl *ContributionController) List(c *fiber.Ctx) error {
	var (
		f   service.ListFilter
		err error
	)
	if f.TontineID, err = helper.ParseUUIDQuery(c, "tontine_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if f.SessionID, err = helper.ParseUUIDQuery(c, "session_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if f.MemberID, err = helper.ParseUUIDQuery(c, "member_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	f.Status = strings.TrimSpace(c.Query("status"))

	p := helper.ResolvePaging(c, 50, 500)
	f.Offset, f.Limit = p.Offset, p.Limit
	rows, total, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "contributions", rows, &pg)
}
