package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PenaltyStatusUnpaid        = "unpaid"
	PenaltyStatusPartiallyPaid = "partially_paid"
	PenaltyStatusPaid          = "paid"
	PenaltyStatusCancelled     = "cancelled"
)

const (
	PenaltyTypeAbsence          = "absence"
	PenaltyTypeLateContribution = "late_contribution"
	PenaltyTypeMisconduct       = "misconduct"
	PenaltyTypeOther            = "other"
)

const PenaltyReasonAbsence = "absence"

type PenaltyModel struct {
	PenaltyID uuid.UUID `gorm:"column:penalty_id;type:uuid;primaryKey" json:"penalty_id"`

	PenaltyMemberID  uuid.UUID  `gorm:"column:penalty_member_id;type:uuid;not null;index" json:"penalty_member_id"`
	PenaltySessionID *uuid.UUID `gorm:"column:penalty_session_id;type:uuid;index" json:"penalty_session_id,omitempty"`
	PenaltyTontineID *uuid.UUID `gorm:"column:penalty_tontine_id;type:uuid;index" json:"penalty_tontine_id,omitempty"`

	PenaltyAmount     decimal.Decimal `gorm:"column:penalty_amount;type:numeric(14,2);not null" json:"penalty_amount"`
	PenaltyAmountPaid decimal.Decimal `gorm:"column:penalty_amount_paid;type:numeric(14,2);not null" json:"penalty_amount_paid"`
	PenaltyReason     string          `gorm:"column:penalty_reason;type:text;not null" json:"penalty_reason"`
	PenaltyType       string          `gorm:"column:penalty_type;type:varchar(30);not null" json:"penalty_type"`
	PenaltyStatus     string          `gorm:"column:penalty_status;type:varchar(20);not null;index" json:"penalty_status"`
	PenaltyPaidAt     *time.Time      `gorm:"column:penalty_paid_at" json:"penalty_paid_at,omitempty"`

	PenaltyCreatedAt time.Time `gorm:"column:penalty_created_at;autoCreateTime" json:"penalty_created_at"`
	PenaltyUpdatedAt time.Time `gorm:"column:penalty_updated_at;autoUpdateTime" json:"penalty_updated_at"`
}

func (PenaltyModel) TableName() string { return "penalties" }

func (p *PenaltyModel) BeforeCreate(tx *gorm.DB) error {
	if p.PenaltyID == uuid.Nil {
		p.PenaltyID = uuid.New()
	}
	if p.PenaltyStatus == "" {
		p.PenaltyStatus = PenaltyStatusUnpaid
	}
	return nil
}

func (p *PenaltyModel) Outstanding() decimal.Decimal {
	r := p.PenaltyAmount.Sub(p.PenaltyAmountPaid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

func IsValidPenaltyType(s string) bool {
	switch s {
	case PenaltyTypeAbsence, PenaltyTypeLateContribution, PenaltyTypeMisconduct, PenaltyTypeOther:
		return true
	}
	return false
}
