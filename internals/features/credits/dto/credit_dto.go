package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"njangitech_backend/internals/features/credits/model"
)

type RequestCreditRequest struct {
	CreditMemberID     uuid.UUID       `json:"credit_member_id" validate:"required"`
	CreditTontineID    *uuid.UUID      `json:"credit_tontine_id"`
	CreditAmount       decimal.Decimal `json:"credit_amount" validate:"gt=0"`
	CreditInterestRate decimal.Decimal `json:"credit_interest_rate" validate:"gte=0,lte=100"`
	CreditDueDate      time.Time       `json:"credit_due_date" validate:"required"`
	CreditPurpose      *string         `json:"credit_purpose" validate:"omitempty,max=500"`
}

func (r *RequestCreditRequest) Normalize() {
	if r.CreditPurpose != nil {
		p := strings.TrimSpace(*r.CreditPurpose)
		if p == "" {
			r.CreditPurpose = nil
		} else {
			r.CreditPurpose = &p
		}
	}
	r.CreditDueDate = r.CreditDueDate.UTC()
}

type RepayCreditRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type ListCreditsQuery struct {
	MemberID  *uuid.UUID
	TontineID *uuid.UUID
	Status    string
	Offset    int
	Limit     int
}

type RefreshOverdueResult struct {
	Updated int                 `json:"updated"`
	Credits []model.CreditModel `json:"credits"`
}

type ActiveCreditResponse struct {
	MemberID     uuid.UUID          `json:"member_id"`
	HasActive    bool               `json:"has_active_credit"`
	ActiveCredit *model.CreditModel `json:"active_credit,omitempty"`
}
