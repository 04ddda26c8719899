package dbtest

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	contributionModel "njangitech_backend/internals/features/contributions/model"
	memberModel "njangitech_backend/internals/features/members/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
)

var fundSeq int64

// Base is the reference instant of fixtures.
var Base = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
}

func Member(t testing.TB, db *gorm.DB, name string) *memberModel.MemberModel {
	t.Helper()
	m := &memberModel.MemberModel{MemberFullName: name, MemberStatus: memberModel.MemberStatusActive}
	must(t, db.Create(m).Error)
	return m
}

func Tontine(t testing.TB, db *gorm.DB, kind string, amount int64) *tontineModel.TontineModel {
	t.Helper()
	tn := &tontineModel.TontineModel{
		TontineName:               "Njangi " + kind,
		TontineContributionAmount: decimal.NewFromInt(amount),
		TontinePeriod:             tontineModel.TontinePeriodMonthly,
		TontineType:               kind,
		TontineStatus:             tontineModel.TontineStatusActive,
	}
	must(t, db.Create(tn).Error)
	return tn
}

func Join(t testing.TB, db *gorm.DB, tontineID, memberID uuid.UUID, nbParts int, joinedAt time.Time) *tontineModel.ParticipationModel {
	t.Helper()
	p := &tontineModel.ParticipationModel{
		ParticipationTontineID: tontineID,
		ParticipationMemberID:  memberID,
		ParticipationNbParts:   nbParts,
		ParticipationActive:    true,
		ParticipationJoinedAt:  joinedAt,
	}
	must(t, db.Create(p).Error)
	return p
}

func Session(t testing.TB, db *gorm.DB, tontineID uuid.UUID, number int, status string) *sessionModel.SessionModel {
	t.Helper()
	s := &sessionModel.SessionModel{
		SessionTontineID:          tontineID,
		SessionNumber:             number,
		SessionDate:               Base.AddDate(0, number, 0),
		SessionStatus:             status,
		SessionTotalContributions: decimal.Zero,
		SessionTotalPenalties:     decimal.Zero,
	}
	must(t, db.Create(s).Error)
	return s
}

// Fund records a standalone contribution so the tontine has cash in hand.
func Fund(t testing.TB, db *gorm.DB, tontineID uuid.UUID, amount int64) {
	t.Helper()
	m := Member(t, db, "Funder "+uuid.NewString()[:8])
	s := &sessionModel.SessionModel{
		SessionTontineID:          tontineID,
		SessionNumber:             1000 + int(atomic.AddInt64(&fundSeq, 1)),
		SessionDate:               Base,
		SessionStatus:             sessionModel.SessionStatusClosed,
		SessionTotalContributions: decimal.NewFromInt(amount),
		SessionTotalPenalties:     decimal.Zero,
	}
	must(t, db.Create(s).Error)
	c := &contributionModel.ContributionModel{
		ContributionSessionID:      s.SessionID,
		ContributionMemberID:       m.MemberID,
		ContributionTontineID:      tontineID,
		ContributionAmount:         decimal.NewFromInt(amount),
		ContributionExpectedAmount: decimal.NewFromInt(amount),
		ContributionStatus:         contributionModel.ContributionStatusComplete,
	}
	must(t, db.Create(c).Error)
}

func Penalty(t testing.TB, db *gorm.DB, tontineID, memberID uuid.UUID, amount, paid int64, status string) *penaltyModel.PenaltyModel {
	t.Helper()
	p := &penaltyModel.PenaltyModel{
		PenaltyMemberID:   memberID,
		PenaltyTontineID:  &tontineID,
		PenaltyAmount:     decimal.NewFromInt(amount),
		PenaltyAmountPaid: decimal.NewFromInt(paid),
		PenaltyReason:     "late",
		PenaltyType:       penaltyModel.PenaltyTypeLateContribution,
		PenaltyStatus:     status,
	}
	must(t, db.Create(p).Error)
	return p
}
