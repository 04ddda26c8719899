package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TontineTypePresence = "presence"
	TontineTypeOptional = "optional"
)

const (
	TontinePeriodWeekly   = "weekly"
	TontinePeriodBiweekly = "biweekly"
	TontinePeriodMonthly  = "monthly"
)

const (
	TontineStatusActive    = "active"
	TontineStatusEnded     = "ended"
	TontineStatusCancelled = "cancelled"
)

type TontineModel struct {
	TontineID uuid.UUID `gorm:"column:tontine_id;type:uuid;primaryKey" json:"tontine_id"`

	TontineName        string  `gorm:"column:tontine_name;type:varchar(150);not null" json:"tontine_name"`
	TontineDescription *string `gorm:"column:tontine_description;type:text" json:"tontine_description,omitempty"`

	// Base amount per share and per session.
	TontineContributionAmount decimal.Decimal `gorm:"column:tontine_contribution_amount;type:numeric(14,2);not null" json:"tontine_contribution_amount"`
	TontinePeriod             string          `gorm:"column:tontine_period;type:varchar(20);not null" json:"tontine_period"`
	TontineType               string          `gorm:"column:tontine_type;type:varchar(20);not null" json:"tontine_type"`
	TontineStatus             string          `gorm:"column:tontine_status;type:varchar(20);not null;index" json:"tontine_status"`
	TontineStartDate          *time.Time      `gorm:"column:tontine_start_date" json:"tontine_start_date,omitempty"`

	TontineCreatedAt time.Time `gorm:"column:tontine_created_at;autoCreateTime" json:"tontine_created_at"`
	TontineUpdatedAt time.Time `gorm:"column:tontine_updated_at;autoUpdateTime" json:"tontine_updated_at"`
}

func (TontineModel) TableName() string { return "tontines" }

func (t *TontineModel) BeforeCreate(tx *gorm.DB) error {
	if t.TontineID == uuid.Nil {
		t.TontineID = uuid.New()
	}
	if t.TontineStatus == "" {
		t.TontineStatus = TontineStatusActive
	}
	return nil
}

func (t *TontineModel) IsPresence() bool { return t.TontineType == TontineTypePresence }
func (t *TontineModel) IsActive() bool   { return t.TontineStatus == TontineStatusActive }

func IsValidTontineStatus(s string) bool {
	switch s {
	case TontineStatusActive, TontineStatusEnded, TontineStatusCancelled:
		return true
	}
	return false
}

// ParticipationModel registers a member in a tontine with a share count.
type ParticipationModel struct {
	ParticipationID uuid.UUID `gorm:"column:participation_id;type:uuid;primaryKey" json:"participation_id"`

	ParticipationTontineID uuid.UUID `gorm:"column:participation_tontine_id;type:uuid;not null;uniqueIndex:uq_participation_tontine_member,priority:1" json:"participation_tontine_id"`
	ParticipationMemberID  uuid.UUID `gorm:"column:participation_member_id;type:uuid;not null;uniqueIndex:uq_participation_tontine_member,priority:2;index" json:"participation_member_id"`

	ParticipationNbParts  int       `gorm:"column:participation_nb_parts;not null" json:"participation_nb_parts"`
	ParticipationActive   bool      `gorm:"column:participation_active;not null" json:"participation_active"`
	ParticipationJoinedAt time.Time `gorm:"column:participation_joined_at;not null" json:"participation_joined_at"`

	ParticipationCreatedAt time.Time `gorm:"column:participation_created_at;autoCreateTime" json:"participation_created_at"`
}

func (ParticipationModel) TableName() string { return "tontine_members" }

func (p *ParticipationModel) BeforeCreate(tx *gorm.DB) error {
	if p.ParticipationID == uuid.Nil {
		p.ParticipationID = uuid.New()
	}
	if p.ParticipationJoinedAt.IsZero() {
		p.ParticipationJoinedAt = time.Now().UTC()
	}
	return nil
}

// ExpectedAmount is what the participant owes per session.
func (p *ParticipationModel) ExpectedAmount(base decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(int64(p.ParticipationNbParts)))
}
