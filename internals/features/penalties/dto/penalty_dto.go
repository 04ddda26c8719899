package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePenaltyRequest struct {
	PenaltyMemberID  uuid.UUID       `json:"penalty_member_id" validate:"required"`
	PenaltySessionID *uuid.UUID      `json:"penalty_session_id"`
	PenaltyTontineID *uuid.UUID      `json:"penalty_tontine_id"`
	PenaltyAmount    decimal.Decimal `json:"penalty_amount" validate:"gt=0"`
	PenaltyReason    string          `json:"penalty_reason" validate:"required,max=500"`
	PenaltyType      string          `json:"penalty_type" validate:"required,oneof=absence late_contribution misconduct other"`
}

func (r *CreatePenaltyRequest) Normalize() {
	r.PenaltyReason = strings.TrimSpace(r.PenaltyReason)
	r.PenaltyType = strings.ToLower(strings.TrimSpace(r.PenaltyType))
}

type PayPenaltyRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type ListPenaltiesQuery struct {
	MemberID  *uuid.UUID
	SessionID *uuid.UUID
	TontineID *uuid.UUID
	Status    string
	Offset    int
	Limit     int
}
