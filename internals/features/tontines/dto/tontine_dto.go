package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"njangitech_backend/internals/features/tontines/model"
)

type CreateTontineRequest struct {
	TontineName               string          `json:"tontine_name" validate:"required,min=2,max=150"`
	TontineDescription        *string         `json:"tontine_description"`
	TontineContributionAmount decimal.Decimal `json:"tontine_contribution_amount" validate:"gt=0"`
	TontinePeriod             string          `json:"tontine_period" validate:"required,oneof=weekly biweekly monthly"`
	TontineType               string          `json:"tontine_type" validate:"required,oneof=presence optional"`
	TontineStartDate          *time.Time      `json:"tontine_start_date"`
}

func (r *CreateTontineRequest) ToModel() *model.TontineModel {
	return &model.TontineModel{
		TontineName:               strings.TrimSpace(r.TontineName),
		TontineDescription:        r.TontineDescription,
		TontineContributionAmount: r.TontineContributionAmount,
		TontinePeriod:             r.TontinePeriod,
		TontineType:               r.TontineType,
		TontineStatus:             model.TontineStatusActive,
		TontineStartDate:          r.TontineStartDate,
	}
}

type UpdateTontineStatusRequest struct {
	TontineStatus string `json:"tontine_status" validate:"required,oneof=active ended cancelled"`
}

type RegisterMemberRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	NbParts  int       `json:"nb_parts" validate:"omitempty,min=1,max=100"`
}

// ParticipantResponse is a participation joined with its member.
type ParticipantResponse struct {
	ParticipationID uuid.UUID       `json:"participation_id"`
	MemberID        uuid.UUID       `json:"member_id"`
	MemberFullName  string          `json:"member_full_name"`
	MemberStatus    string          `json:"member_status"`
	NbParts         int             `json:"nb_parts"`
	ExpectedAmount  decimal.Decimal `json:"expected_amount"`
	JoinedAt        time.Time       `json:"joined_at"`
}

// MemberTontineResponse is one tontine a member takes part in.
type MemberTontineResponse struct {
	TontineID      uuid.UUID       `json:"tontine_id"`
	TontineName    string          `json:"tontine_name"`
	TontineType    string          `json:"tontine_type"`
	TontineStatus  string          `json:"tontine_status"`
	NbParts        int             `json:"nb_parts"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	JoinedAt       time.Time       `json:"joined_at"`
}
