package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required,max=500"`
	MemberID    *uuid.UUID      `json:"member_id"`
}

func (r *AdjustmentRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
}

type LedgerSummary struct {
	TontineID uuid.UUID       `json:"tontine_id"`
	Total     decimal.Decimal `json:"total"`
}
