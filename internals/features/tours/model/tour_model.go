package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TourModel struct {
	TourID uuid.UUID `gorm:"column:tour_id;type:uuid;primaryKey" json:"tour_id"`

	TourTontineID     uuid.UUID  `gorm:"column:tour_tontine_id;type:uuid;not null;uniqueIndex:uq_tours_tontine_number,priority:1" json:"tour_tontine_id"`
	TourNumber        int        `gorm:"column:tour_number;not null;uniqueIndex:uq_tours_tontine_number,priority:2" json:"tour_number"`
	TourCycle         int        `gorm:"column:tour_cycle;not null" json:"tour_cycle"`
	TourCyclePosition int        `gorm:"column:tour_cycle_position;not null" json:"tour_cycle_position"`
	TourBeneficiaryID uuid.UUID  `gorm:"column:tour_beneficiary_id;type:uuid;not null;index" json:"tour_beneficiary_id"`
	TourSessionID     *uuid.UUID `gorm:"column:tour_session_id;type:uuid" json:"tour_session_id,omitempty"`

	TourAmount        decimal.Decimal `gorm:"column:tour_amount;type:numeric(14,2);not null" json:"tour_amount"`
	TourDistributedAt time.Time       `gorm:"column:tour_distributed_at;not null" json:"tour_distributed_at"`

	TourCreatedAt time.Time `gorm:"column:tour_created_at;autoCreateTime" json:"tour_created_at"`
}

func (TourModel) TableName() string { return "tours" }

func (t *TourModel) BeforeCreate(tx *gorm.DB) error {
	if t.TourID == uuid.Nil {
		t.TourID = uuid.New()
	}
	return nil
}
