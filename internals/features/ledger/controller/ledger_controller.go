package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/ledger/dto"
	"njangitech_backend/internals/features/ledger/model"
	"njangitech_backend/internals/features/ledger/service"
	helper "njangitech_backend/internals/helpers"
)

type LedgerController struct {
	Svc *service.Service
}

func NewLedgerController(svc *service.Service) *LedgerController {
	return &LedgerController{Svc: svc}
}

// GET /tontines/:id/transactions?type=&member_id=&page=&per_page=
func (ctl *LedgerController) List(c *fiber.Ctx) error {
	tontineID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	f := service.ListFilter{TontineID: tontineID, Type: strings.TrimSpace(c.Query("type"))}
	if f.Type != "" && !model.IsValidTransactionType(f.Type) {
		return helper.JsonError(c, fiber.StatusBadRequest, "unknown transaction type")
	}
	if f.MemberID, err = helper.ParseUUIDQuery(c, "member_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)
	f.Offset, f.Limit = p.Offset, p.Limit

	rows, total, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "transactions", rows, &pg)
}

// GET /tontines/:id/transactions/total
func (ctl *LedgerController) Total(c *fiber.Ctx) error {
	tontineID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	total, err := ctl.Svc.Total(c.UserContext(), tontineID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", dto.LedgerSummary{TontineID: tontineID, Total: total})
}

// POST /tontines/:id/adjustments
func (ctl *LedgerController) Adjust(c *fiber.Ctx) error {
	tontineID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.AdjustmentRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()
	row, err := ctl.Svc.RecordAdjustment(c.UserContext(), tontineID, req.Amount, req.Description, req.MemberID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "adjustment recorded", row)
}
