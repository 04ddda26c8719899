package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreditModel struct {
	CreditID uuid.UUID `gorm:"column:credit_id;type:uuid;primaryKey" json:"credit_id"`

	CreditMemberID  uuid.UUID  `gorm:"column:credit_member_id;type:uuid;not null;index" json:"credit_member_id"`
	CreditTontineID *uuid.UUID `gorm:"column:credit_tontine_id;type:uuid;index" json:"credit_tontine_id,omitempty"`

	CreditAmount        decimal.Decimal `gorm:"column:credit_amount;type:numeric(14,2);not null" json:"credit_amount"`
	CreditInterestRate  decimal.Decimal `gorm:"column:credit_interest_rate;type:numeric(5,2);not null" json:"credit_interest_rate"`
	CreditPayoffBalance decimal.Decimal `gorm:"column:credit_payoff_balance;type:numeric(14,2);not null" json:"credit_payoff_balance"`
	CreditAmountRepaid  decimal.Decimal `gorm:"column:credit_amount_repaid;type:numeric(14,2);not null" json:"credit_amount_repaid"`
	CreditPurpose       *string         `gorm:"column:credit_purpose;type:text" json:"credit_purpose,omitempty"`

	CreditStatus string `gorm:"column:credit_status;type:varchar(20);not null;index" json:"credit_status"`

	CreditDueDate     time.Time  `gorm:"column:credit_due_date;not null" json:"credit_due_date"`
	CreditApprovedAt  *time.Time `gorm:"column:credit_approved_at" json:"credit_approved_at,omitempty"`
	CreditDisbursedAt *time.Time `gorm:"column:credit_disbursed_at" json:"credit_disbursed_at,omitempty"`
	CreditCompletedAt *time.Time `gorm:"column:credit_completed_at" json:"credit_completed_at,omitempty"`

	CreditCreatedAt time.Time `gorm:"column:credit_created_at;autoCreateTime" json:"credit_created_at"`
	CreditUpdatedAt time.Time `gorm:"column:credit_updated_at;autoUpdateTime" json:"credit_updated_at"`
}

func (CreditModel) TableName() string { return "credits" }

func (c *CreditModel) BeforeCreate(tx *gorm.DB) error {
	if c.CreditID == uuid.Nil {
		c.CreditID = uuid.New()
	}
	if c.CreditStatus == "" {
		c.CreditStatus = CreditStatusPending
	}
	return nil
}

// PayoffBalance is principal * (1 + rate/100), rounded to cents.
func PayoffBalance(principal, rate decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)))
	return principal.Mul(factor).Round(2)
}

// Remaining is what is still owed, never negative.
func (c *CreditModel) Remaining() decimal.Decimal {
	r := c.CreditPayoffBalance.Sub(c.CreditAmountRepaid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
