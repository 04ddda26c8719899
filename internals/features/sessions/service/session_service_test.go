package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	"njangitech_backend/internals/databases/dbtest"
	contributionModel "njangitech_backend/internals/features/contributions/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	"njangitech_backend/internals/features/sessions/dto"
	"njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/helpers/apperror"
)

func newService(db *gorm.DB) *Service {
	svc := New(db, configs.DefaultRules())
	svc.Now = func() time.Time { return dbtest.Base }
	return svc
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCreateSessionNumbersIncrease(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()
	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)

	first, err := svc.CreateSession(ctx, dto.CreateSessionRequest{SessionTontineID: tn.TontineID, SessionDate: dbtest.Base})
	require.NoError(t, err)
	second, err := svc.CreateSession(ctx, dto.CreateSessionRequest{SessionTontineID: tn.TontineID, SessionDate: dbtest.Base.AddDate(0, 1, 0)})
	require.NoError(t, err)

	assert.Equal(t, 1, first.SessionNumber)
	assert.Equal(t, 2, second.SessionNumber)
	assert.Equal(t, model.SessionStatusScheduled, second.SessionStatus)

	require.NoError(t, db.Model(tn).Update("tontine_status", tontineModel.TontineStatusEnded).Error)
	_, err = svc.CreateSession(ctx, dto.CreateSessionRequest{SessionTontineID: tn.TontineID, SessionDate: dbtest.Base})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestCloseSessionFinesAbsentMembers(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	a := dbtest.Member(t, db, "Amina")
	b := dbtest.Member(t, db, "Bertrand")
	c := dbtest.Member(t, db, "Clarisse")
	for _, m := range []uuid.UUID{a.MemberID, b.MemberID, c.MemberID} {
		dbtest.Join(t, db, tn.TontineID, m, 1, dbtest.Base)
	}
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)

	err := svc.SaveMeeting(ctx, sess.SessionID, []dto.AttendanceRecord{
		{MemberID: a.MemberID, Present: true, Amount: dec(50000)},
		{MemberID: b.MemberID, Present: false, Amount: decimal.Zero},
		{MemberID: c.MemberID, Present: true, Amount: dec(50000)},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusOngoing, got.SessionStatus)

	res, err := svc.CloseSession(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.True(t, res.TotalContributions.Equal(dec(100000)), res.TotalContributions.String())
	assert.True(t, res.TotalPenalties.Equal(dec(5000)), res.TotalPenalties.String())
	require.Len(t, res.PenaltiesCreated, 1)
	assert.Equal(t, b.MemberID, res.PenaltiesCreated[0].PenaltyMemberID)
	assert.Equal(t, penaltyModel.PenaltyReasonAbsence, res.PenaltiesCreated[0].PenaltyReason)
	assert.Equal(t, penaltyModel.PenaltyStatusUnpaid, res.PenaltiesCreated[0].PenaltyStatus)

	got, err = svc.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusClosed, got.SessionStatus)
	assert.Equal(t, 2, got.SessionAttendanceCount)
	assert.True(t, got.SessionTotalContributions.Equal(dec(100000)))
	require.NotNil(t, got.SessionClosedAt)

	var n int64
	require.NoError(t, db.Table("transactions").Count(&n).Error)
	assert.Zero(t, n, "closing a session writes no ledger entry")

	_, err = svc.CloseSession(ctx, sess.SessionID)
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))

	err = svc.RecordAttendance(ctx, sess.SessionID, dto.AttendanceRecord{MemberID: a.MemberID, Present: true, Amount: dec(50000)})
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

func TestCloseSessionCountsUnrecordedAsAbsent(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)
	a := dbtest.Member(t, db, "Amina")
	b := dbtest.Member(t, db, "Bertrand")
	dbtest.Join(t, db, tn.TontineID, a.MemberID, 1, dbtest.Base)
	dbtest.Join(t, db, tn.TontineID, b.MemberID, 1, dbtest.Base)
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)

	require.NoError(t, svc.RecordAttendance(ctx, sess.SessionID, dto.AttendanceRecord{MemberID: a.MemberID, Present: true, Amount: dec(10000)}))

	res, err := svc.CloseSession(ctx, sess.SessionID)
	require.NoError(t, err)
	require.Len(t, res.PenaltiesCreated, 1)
	assert.Equal(t, b.MemberID, res.PenaltiesCreated[0].PenaltyMemberID)
}

func TestCloseSessionOptionalTontineFollowsRules(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	svc.Rules.Absence.PenalizeOptional = false
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypeOptional, 10000)
	a := dbtest.Member(t, db, "Amina")
	dbtest.Join(t, db, tn.TontineID, a.MemberID, 2, dbtest.Base)
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)

	res, err := svc.CloseSession(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Empty(t, res.PenaltiesCreated)
	assert.True(t, res.TotalPenalties.IsZero())
}

func TestSaveMeetingIsAllOrNothing(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	a := dbtest.Member(t, db, "Amina")
	b := dbtest.Member(t, db, "Bertrand")
	dbtest.Join(t, db, tn.TontineID, a.MemberID, 1, dbtest.Base)
	dbtest.Join(t, db, tn.TontineID, b.MemberID, 1, dbtest.Base)
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)

	err := svc.SaveMeeting(ctx, sess.SessionID, []dto.AttendanceRecord{
		{MemberID: a.MemberID, Present: true, Amount: dec(50000)},
		{MemberID: b.MemberID, Present: true, Amount: dec(20000)},
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	var n int64
	require.NoError(t, db.Model(&contributionModel.ContributionModel{}).Count(&n).Error)
	assert.Zero(t, n)
	got, err := svc.Get(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusScheduled, got.SessionStatus)
}

func TestRecordAttendanceUpserts(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypeOptional, 10000)
	a := dbtest.Member(t, db, "Amina")
	dbtest.Join(t, db, tn.TontineID, a.MemberID, 3, dbtest.Base)
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)

	require.NoError(t, svc.RecordAttendance(ctx, sess.SessionID, dto.AttendanceRecord{MemberID: a.MemberID, Present: true, Amount: dec(10000)}))
	require.NoError(t, svc.RecordAttendance(ctx, sess.SessionID, dto.AttendanceRecord{MemberID: a.MemberID, Present: true, Amount: dec(30000)}))

	sheet, err := svc.AttendanceSheet(ctx, sess.SessionID)
	require.NoError(t, err)
	require.Len(t, sheet, 1)
	assert.True(t, sheet[0].Recorded)
	assert.True(t, sheet[0].Amount.Equal(dec(30000)))
	assert.Equal(t, contributionModel.ContributionStatusComplete, sheet[0].ContributionStatus)

	require.NoError(t, svc.RecordAttendance(ctx, sess.SessionID, dto.AttendanceRecord{MemberID: a.MemberID, Present: false}))
	var n int64
	require.NoError(t, db.Model(&contributionModel.ContributionModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCancelSession(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()
	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)

	got, err := svc.CancelSession(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCancelled, got.SessionStatus)

	_, err = svc.CloseSession(ctx, sess.SessionID)
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
}

// lockedTables records, in order, the tables read with FOR UPDATE.
func lockedTables(t *testing.T, db *gorm.DB) *[]string {
	t.Helper()
	var tables []string
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:locks", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Clauses["FOR"]; ok {
			tables = append(tables, tx.Statement.Table)
		}
	}))
	return &tables
}

func TestSaveMeetingLocksTontineBeforeSession(t *testing.T) {
	db := dbtest.New(t)
	svc := newService(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	a := dbtest.Member(t, db, "Amina")
	dbtest.Join(t, db, tn.TontineID, a.MemberID, 1, dbtest.Base)
	sess := dbtest.Session(t, db, tn.TontineID, 1, model.SessionStatusScheduled)
	tables := lockedTables(t, db)

	require.NoError(t, svc.SaveMeeting(ctx, sess.SessionID, []dto.AttendanceRecord{
		{MemberID: a.MemberID, Present: false},
	}))
	assert.Equal(t, []string{"tontines", "sessions"}, *tables)

	*tables = nil
	_, err := svc.CloseSession(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tontines", "sessions"}, *tables)

	_, err = svc.CloseSession(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrSessionNotFound))
}
