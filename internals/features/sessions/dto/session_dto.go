package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	penaltyModel "njangitech_backend/internals/features/penalties/model"
	"njangitech_backend/internals/features/sessions/model"
)

type CreateSessionRequest struct {
	SessionTontineID uuid.UUID `json:"session_tontine_id" validate:"required"`
	SessionDate      time.Time `json:"session_date" validate:"required"`
	SessionLocation  *string   `json:"session_location" validate:"omitempty,max=200"`
}

// AttendanceRecord is one line of the meeting sheet. Amount is what the
// member paid at the session; it must be zero for an absent member.
type AttendanceRecord struct {
	MemberID uuid.UUID       `json:"member_id" validate:"required"`
	Present  bool            `json:"present"`
	Amount   decimal.Decimal `json:"amount" validate:"gte=0"`
}

type SaveMeetingRequest struct {
	Records []AttendanceRecord `json:"records" validate:"required,min=1,dive"`
}

type AttendanceSheetRow struct {
	MemberID           uuid.UUID       `json:"member_id"`
	MemberFullName     string          `json:"member_full_name"`
	NbParts            int             `json:"nb_parts"`
	ExpectedAmount     decimal.Decimal `json:"expected_amount"`
	Recorded           bool            `json:"recorded"`
	Present            bool            `json:"present"`
	Amount             decimal.Decimal `json:"amount"`
	ContributionStatus string          `json:"contribution_status,omitempty"`
}

type CloseSessionResponse struct {
	Session            *model.SessionModel         `json:"session"`
	TotalContributions decimal.Decimal             `json:"total_contributions"`
	TotalPenalties     decimal.Decimal             `json:"total_penalties"`
	PenaltiesCreated   []penaltyModel.PenaltyModel `json:"penalties_created"`
}
