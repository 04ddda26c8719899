package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/credits/dto"
	"njangitech_backend/internals/features/credits/service"
	helper "njangitech_backend/internals/helpers"
)

type CreditController struct {
	Svc *service.Service
}

func NewCreditController(svc *service.Service) *CreditController {
	return &CreditController{Svc: svc}
}

var creditSort = map[string]string{
	"created": "credit_created_at",
	"due":     "credit_due_date",
	"amount":  "credit_amount",
}

// GET /credits?member_id=&tontine_id=&status=
func (ctl *CreditController) List(c *fiber.Ctx) error {
	var (
		q   dto.ListCreditsQuery
		err error
	)
	if q.MemberID, err = helper.ParseUUIDQuery(c, "member_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if q.TontineID, err = helper.ParseUUIDQuery(c, "tontine_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	q.Status = strings.TrimSpace(c.Query("status"))
	p := helper.ResolvePaging(c, 20, 200)
	q.Offset, q.Limit = p.Offset, p.Limit

	rows, total, err := ctl.Svc.List(c.UserContext(), q, helper.OrderBy(c, creditSort, "created", "desc"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "credits", rows, &pg)
}

// POST /credits
func (ctl *CreditController) Request(c *fiber.Ctx) error {
	var req dto.RequestCreditRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	cr, err := ctl.Svc.RequestCredit(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "credit requested", cr)
}

// GET /credits/:id
func (ctl *CreditController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	cr, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", cr)
}

func (ctl *CreditController) Approve(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	cr, err := ctl.Svc.Approve(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "credit approved", cr)
}

func (ctl *CreditController) Reject(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	cr, err := ctl.Svc.Reject(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "credit rejected", cr)
}

func (ctl *CreditController) Disburse(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	cr, err := ctl.Svc.Disburse(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "credit disbursed", cr)
}

// POST /credits/:id/repay {"amount": "..."}
func (ctl *CreditController) Repay(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.RepayCreditRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	cr, err := ctl.Svc.Repay(c.UserContext(), id, req.Amount)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "repayment recorded", cr)
}

// POST /credits/refresh-overdue
func (ctl *CreditController) RefreshOverdue(c *fiber.Ctx) error {
	res, err := ctl.Svc.RefreshOverdueStatuses(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "overdue statuses refreshed", res)
}

// GET /members/:id/active-credit
func (ctl *CreditController) MemberActiveCredit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.ActiveCredit(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", res)
}
