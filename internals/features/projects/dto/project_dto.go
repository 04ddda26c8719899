package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProjectRequest struct {
	ProjectTontineID     uuid.UUID       `json:"project_tontine_id" validate:"required"`
	ProjectResponsibleID *uuid.UUID      `json:"project_responsible_id"`
	ProjectName          string          `json:"project_name" validate:"required,min=2,max=150"`
	ProjectDescription   *string         `json:"project_description"`
	ProjectBudget        decimal.Decimal `json:"project_budget" validate:"gt=0"`
	ProjectStartDate     *time.Time      `json:"project_start_date"`
}

func (r *CreateProjectRequest) Normalize() {
	r.ProjectName = strings.TrimSpace(r.ProjectName)
	if r.ProjectDescription != nil {
		d := strings.TrimSpace(*r.ProjectDescription)
		if d == "" {
			r.ProjectDescription = nil
		} else {
			r.ProjectDescription = &d
		}
	}
}

// AllocateFundsRequest carries a signed amount: positive allocates cash to
// the project, negative returns it to the tontine.
type AllocateFundsRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type ListProjectsQuery struct {
	TontineID *uuid.UUID
	Status    string
	Offset    int
	Limit     int
}
