package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ContributionStatusPending  = "pending"
	ContributionStatusPartial  = "partial"
	ContributionStatusComplete = "complete"
	ContributionStatusLate     = "late"
)

type ContributionModel struct {
	ContributionID uuid.UUID `gorm:"column:contribution_id;type:uuid;primaryKey" json:"contribution_id"`

	ContributionSessionID uuid.UUID `gorm:"column:contribution_session_id;type:uuid;not null;uniqueIndex:uq_contribution_session_member,priority:1" json:"contribution_session_id"`
	ContributionMemberID  uuid.UUID `gorm:"column:contribution_member_id;type:uuid;not null;uniqueIndex:uq_contribution_session_member,priority:2;index" json:"contribution_member_id"`
	ContributionTontineID uuid.UUID `gorm:"column:contribution_tontine_id;type:uuid;not null;index" json:"contribution_tontine_id"`

	ContributionAmount         decimal.Decimal `gorm:"column:contribution_amount;type:numeric(14,2);not null" json:"contribution_amount"`
	ContributionExpectedAmount decimal.Decimal `gorm:"column:contribution_expected_amount;type:numeric(14,2);not null" json:"contribution_expected_amount"`
	ContributionStatus         string          `gorm:"column:contribution_status;type:varchar(20);not null" json:"contribution_status"`
	ContributionPaidAt         *time.Time      `gorm:"column:contribution_paid_at" json:"contribution_paid_at,omitempty"`

	ContributionCreatedAt time.Time `gorm:"column:contribution_created_at;autoCreateTime" json:"contribution_created_at"`
	ContributionUpdatedAt time.Time `gorm:"column:contribution_updated_at;autoUpdateTime" json:"contribution_updated_at"`
}

func (ContributionModel) TableName() string { return "contributions" }

func (c *ContributionModel) BeforeCreate(tx *gorm.DB) error {
	if c.ContributionID == uuid.Nil {
		c.ContributionID = uuid.New()
	}
	return nil
}

// StatusFor derives the status of a paid amount against what was expected.
func StatusFor(amount, expected decimal.Decimal) string {
	switch {
	case amount.IsZero() && expected.IsPositive():
		return ContributionStatusPending
	case amount.LessThan(expected):
		return ContributionStatusPartial
	default:
		return ContributionStatusComplete
	}
}
