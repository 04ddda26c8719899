package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	balance "njangitech_backend/internals/features/balance/service"
	contributionModel "njangitech_backend/internals/features/contributions/model"
	creditModel "njangitech_backend/internals/features/credits/model"
	memberModel "njangitech_backend/internals/features/members/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	projectModel "njangitech_backend/internals/features/projects/model"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	tourModel "njangitech_backend/internals/features/tours/model"
)

type MemberSituation struct {
	Member             *memberModel.MemberModel `json:"member"`
	TotalContributed   decimal.Decimal          `json:"total_contributed"`
	PenaltiesTotal     decimal.Decimal          `json:"penalties_total"`
	PenaltiesUnpaid    decimal.Decimal          `json:"penalties_unpaid"`
	TotalBorrowed      decimal.Decimal          `json:"total_borrowed"`
	OutstandingCredit  decimal.Decimal          `json:"outstanding_credit"`
	ToursReceived      int                      `json:"tours_received"`
	ToursReceivedTotal decimal.Decimal          `json:"tours_received_total"`
	ActiveCredit       *creditModel.CreditModel `json:"active_credit,omitempty"`
	TontineCount       int                      `json:"tontine_count"`
}

type SessionReport struct {
	Session       *sessionModel.SessionModel            `json:"session"`
	Contributions []contributionModel.ContributionModel `json:"contributions"`
	Absentees     []uuid.UUID                           `json:"absentees"`
	Penalties     []penaltyModel.PenaltyModel           `json:"penalties"`
	Tours         []tourModel.TourModel                 `json:"tours"`
}

type TontineDashboard struct {
	Tontine          *tontineModel.TontineModel  `json:"tontine"`
	Balance          balance.Breakdown           `json:"balance"`
	LedgerTotal      decimal.Decimal             `json:"ledger_total"`
	ParticipantCount int                         `json:"participant_count"`
	ActiveCredits    []creditModel.CreditModel   `json:"active_credits"`
	UnpaidPenalties  decimal.Decimal             `json:"unpaid_penalties"`
	ActiveProjects   []projectModel.ProjectModel `json:"active_projects"`
	SessionsClosed   int64                       `json:"sessions_closed"`
}

type BalanceResponse struct {
	TontineID uuid.UUID         `json:"tontine_id"`
	Currency  string            `json:"currency"`
	Balance   decimal.Decimal   `json:"balance"`
	Breakdown balance.Breakdown `json:"breakdown"`
}

// AssociationDashboard sums every tontine of the association.
type AssociationDashboard struct {
	CashInHand           decimal.Decimal `json:"cash_in_hand"`
	TotalContributions   decimal.Decimal `json:"total_contributions"`
	TotalTours           decimal.Decimal `json:"total_tours"`
	ActiveTontines       int64           `json:"active_tontines"`
	ActiveMembers        int64           `json:"active_members"`
	ActiveCredits        int64           `json:"active_credits"`
	PendingPenalties     int64           `json:"pending_penalties"`
	TotalPenaltiesUnpaid decimal.Decimal `json:"total_penalties_unpaid"`
	ActiveProjects       int64           `json:"active_projects"`
}
