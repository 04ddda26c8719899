package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ProjectStatusPlanned     = "planned"
	ProjectStatusFundraising = "fundraising"
	ProjectStatusInProgress  = "in_progress"
	ProjectStatusCompleted   = "completed"
	ProjectStatusCancelled   = "cancelled"
)

type ProjectModel struct {
	ProjectID uuid.UUID `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`

	ProjectTontineID     uuid.UUID  `gorm:"column:project_tontine_id;type:uuid;not null;index" json:"project_tontine_id"`
	ProjectResponsibleID *uuid.UUID `gorm:"column:project_responsible_id;type:uuid" json:"project_responsible_id,omitempty"`

	ProjectName        string  `gorm:"column:project_name;type:varchar(150);not null" json:"project_name"`
	ProjectDescription *string `gorm:"column:project_description;type:text" json:"project_description,omitempty"`

	ProjectBudget          decimal.Decimal `gorm:"column:project_budget;type:numeric(14,2);not null" json:"project_budget"`
	ProjectAmountAllocated decimal.Decimal `gorm:"column:project_amount_allocated;type:numeric(14,2);not null" json:"project_amount_allocated"`
	ProjectStatus          string          `gorm:"column:project_status;type:varchar(20);not null;index" json:"project_status"`

	ProjectStartDate   *time.Time `gorm:"column:project_start_date" json:"project_start_date,omitempty"`
	ProjectCompletedAt *time.Time `gorm:"column:project_completed_at" json:"project_completed_at,omitempty"`

	ProjectCreatedAt time.Time `gorm:"column:project_created_at;autoCreateTime" json:"project_created_at"`
	ProjectUpdatedAt time.Time `gorm:"column:project_updated_at;autoUpdateTime" json:"project_updated_at"`
}

func (ProjectModel) TableName() string { return "projects" }

func (p *ProjectModel) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	if p.ProjectStatus == "" {
		p.ProjectStatus = ProjectStatusPlanned
	}
	return nil
}

func (p *ProjectModel) IsClosed() bool {
	return p.ProjectStatus == ProjectStatusCompleted || p.ProjectStatus == ProjectStatusCancelled
}

// StatusAfterAllocation derives the project status once the allocated
// total has moved from the previous status.
func StatusAfterAllocation(prev string, total, budget decimal.Decimal) string {
	next := prev
	if next == ProjectStatusPlanned && total.IsPositive() {
		next = ProjectStatusFundraising
	}
	if total.GreaterThanOrEqual(budget) && (next == ProjectStatusPlanned || next == ProjectStatusFundraising) {
		next = ProjectStatusInProgress
	}
	if total.LessThan(budget) && prev == ProjectStatusInProgress {
		next = ProjectStatusFundraising
	}
	return next
}
