package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssignTourRequest struct {
	TourTontineID     uuid.UUID       `json:"tour_tontine_id" validate:"required"`
	TourSessionID     *uuid.UUID      `json:"tour_session_id"`
	TourBeneficiaryID uuid.UUID       `json:"tour_beneficiary_id" validate:"required"`
	TourAmount        decimal.Decimal `json:"tour_amount" validate:"gt=0"`
}

type ListToursQuery struct {
	TontineID     *uuid.UUID
	BeneficiaryID *uuid.UUID
	SessionID     *uuid.UUID
	Offset        int
	Limit         int
}

type EligibleBeneficiary struct {
	MemberID         uuid.UUID       `json:"member_id"`
	MemberFullName   string          `json:"member_full_name"`
	NbParts          int             `json:"nb_parts"`
	ToursReceived    int             `json:"tours_received"`
	TotalContributed decimal.Decimal `json:"total_contributed"`
	Eligible         bool            `json:"eligible"`
	Reason           string          `json:"reason,omitempty"`
}

type EligibilityResponse struct {
	NextNumber    int                   `json:"next_number"`
	Cycle         int                   `json:"cycle"`
	Position      int                   `json:"cycle_position"`
	Beneficiaries []EligibleBeneficiary `json:"beneficiaries"`
}
