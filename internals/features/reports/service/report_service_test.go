package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/configs"
	"njangitech_backend/internals/databases/dbtest"
	creditModel "njangitech_backend/internals/features/credits/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/helpers/apperror"
)

func TestMemberSituation(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, configs.DefaultRules())
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)
	m := dbtest.Member(t, db, "Amina")
	dbtest.Join(t, db, tn.TontineID, m.MemberID, 1, dbtest.Base)
	dbtest.Penalty(t, db, tn.TontineID, m.MemberID, 5000, 2000, penaltyModel.PenaltyStatusPartiallyPaid)
	dbtest.Penalty(t, db, tn.TontineID, m.MemberID, 3000, 0, penaltyModel.PenaltyStatusCancelled)
	require.NoError(t, db.Create(&creditModel.CreditModel{
		CreditMemberID:      m.MemberID,
		CreditTontineID:     &tn.TontineID,
		CreditAmount:        decimal.NewFromInt(100000),
		CreditInterestRate:  decimal.NewFromInt(10),
		CreditPayoffBalance: decimal.NewFromInt(110000),
		CreditAmountRepaid:  decimal.NewFromInt(60000),
		CreditStatus:        creditModel.CreditStatusRepaying,
		CreditDueDate:       dbtest.Base.AddDate(0, 3, 0),
	}).Error)

	sit, err := svc.MemberSituation(ctx, m.MemberID)
	require.NoError(t, err)
	assert.True(t, sit.PenaltiesTotal.Equal(decimal.NewFromInt(5000)))
	assert.True(t, sit.PenaltiesUnpaid.Equal(decimal.NewFromInt(3000)))
	assert.True(t, sit.TotalBorrowed.Equal(decimal.NewFromInt(100000)))
	assert.True(t, sit.OutstandingCredit.Equal(decimal.NewFromInt(50000)))
	require.NotNil(t, sit.ActiveCredit)
	assert.Equal(t, 1, sit.TontineCount)
	assert.Zero(t, sit.ToursReceived)

	_, err = svc.MemberSituation(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrMemberNotFound))
}

func TestSessionReportListsAbsentees(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, configs.DefaultRules())
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)
	a := dbtest.Member(t, db, "Amina")
	b := dbtest.Member(t, db, "Boris")
	dbtest.Join(t, db, tn.TontineID, a.MemberID, 1, dbtest.Base)
	dbtest.Join(t, db, tn.TontineID, b.MemberID, 1, dbtest.Base)
	sess := dbtest.Session(t, db, tn.TontineID, 1, sessionModel.SessionStatusOngoing)
	require.NoError(t, db.Create(&sessionModel.AttendanceModel{
		AttendanceSessionID:  sess.SessionID,
		AttendanceMemberID:   a.MemberID,
		AttendancePresent:    true,
		AttendanceRecordedAt: dbtest.Base,
	}).Error)

	rep, err := svc.SessionReport(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.MemberID}, rep.Absentees)
	assert.Empty(t, rep.Contributions)
}

func TestTontineDashboard(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, configs.DefaultRules())
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)
	m := dbtest.Member(t, db, "Amina")
	dbtest.Join(t, db, tn.TontineID, m.MemberID, 1, dbtest.Base)
	dbtest.Fund(t, db, tn.TontineID, 80000)
	dbtest.Penalty(t, db, tn.TontineID, m.MemberID, 5000, 0, penaltyModel.PenaltyStatusUnpaid)

	dash, err := svc.TontineDashboard(ctx, tn.TontineID)
	require.NoError(t, err)
	assert.True(t, dash.Balance.Balance.Equal(decimal.NewFromInt(80000)))
	assert.True(t, dash.UnpaidPenalties.Equal(decimal.NewFromInt(5000)))
	assert.True(t, dash.LedgerTotal.IsZero())
	assert.Equal(t, 1, dash.ParticipantCount)
	assert.EqualValues(t, 1, dash.SessionsClosed)

	bal, err := svc.TontineBalance(ctx, tn.TontineID)
	require.NoError(t, err)
	assert.Equal(t, "XAF", bal.Currency)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(80000)))

	_, err = svc.TontineBalance(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrTontineNotFound))
}

func TestAssociationDashboardSumsTontines(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, configs.DefaultRules())
	ctx := context.Background()

	first := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)
	second := dbtest.Tontine(t, db, tontineModel.TontineTypeOptional, 5000)
	m := dbtest.Member(t, db, "Amina")
	dbtest.Fund(t, db, first.TontineID, 80000)
	dbtest.Fund(t, db, second.TontineID, 20000)
	dbtest.Penalty(t, db, first.TontineID, m.MemberID, 5000, 1000, penaltyModel.PenaltyStatusPartiallyPaid)
	dbtest.Penalty(t, db, second.TontineID, m.MemberID, 2000, 0, penaltyModel.PenaltyStatusUnpaid)
	require.NoError(t, db.Create(&creditModel.CreditModel{
		CreditMemberID:      m.MemberID,
		CreditTontineID:     &first.TontineID,
		CreditAmount:        decimal.NewFromInt(30000),
		CreditInterestRate:  decimal.Zero,
		CreditPayoffBalance: decimal.NewFromInt(30000),
		CreditAmountRepaid:  decimal.Zero,
		CreditStatus:        creditModel.CreditStatusDisbursed,
		CreditDueDate:       dbtest.Base.AddDate(0, 2, 0),
	}).Error)

	dash, err := svc.AssociationDashboard(ctx)
	require.NoError(t, err)
	// 80000 + 20000 + 1000 collected - 30000 lent
	assert.True(t, dash.CashInHand.Equal(decimal.NewFromInt(71000)), dash.CashInHand.String())
	assert.True(t, dash.TotalContributions.Equal(decimal.NewFromInt(100000)))
	assert.True(t, dash.TotalPenaltiesUnpaid.Equal(decimal.NewFromInt(6000)))
	assert.EqualValues(t, 2, dash.PendingPenalties)
	assert.EqualValues(t, 1, dash.ActiveCredits)
	assert.EqualValues(t, 2, dash.ActiveTontines)
	// Amina plus one funder per Fund call
	assert.EqualValues(t, 3, dash.ActiveMembers)
	assert.Zero(t, dash.ActiveProjects)
}
