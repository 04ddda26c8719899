package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/databases/dbtest"
	memberModel "njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/features/tontines/dto"
	"njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/helpers/apperror"
)

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := New(dbtest.New(t))
	_, err := svc.Create(context.Background(), dto.CreateTontineRequest{
		TontineName:               "Njangi",
		TontineContributionAmount: decimal.Zero,
		TontinePeriod:             model.TontinePeriodMonthly,
		TontineType:               model.TontineTypePresence,
	})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestRegisterMember(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db)
	ctx := context.Background()

	presence := dbtest.Tontine(t, db, model.TontineTypePresence, 50000)
	optional := dbtest.Tontine(t, db, model.TontineTypeOptional, 10000)
	awa := dbtest.Member(t, db, "Awa")

	// presence forces a single share
	p, err := svc.RegisterMember(ctx, presence.TontineID, dto.RegisterMemberRequest{MemberID: awa.MemberID, NbParts: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ParticipationNbParts)

	_, err = svc.RegisterMember(ctx, presence.TontineID, dto.RegisterMemberRequest{MemberID: awa.MemberID})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	_, err = svc.RegisterMember(ctx, optional.TontineID, dto.RegisterMemberRequest{MemberID: awa.MemberID, NbParts: 0})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	p, err = svc.RegisterMember(ctx, optional.TontineID, dto.RegisterMemberRequest{MemberID: awa.MemberID, NbParts: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, p.ParticipationNbParts)

	_, err = svc.RegisterMember(ctx, optional.TontineID, dto.RegisterMemberRequest{MemberID: uuid.New(), NbParts: 1})
	assert.True(t, errors.Is(err, apperror.ErrMemberNotFound))

	_, err = svc.RegisterMember(ctx, uuid.New(), dto.RegisterMemberRequest{MemberID: awa.MemberID})
	assert.True(t, errors.Is(err, apperror.ErrTontineNotFound))

	parts, err := svc.Participants(ctx, optional.TontineID)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Awa", parts[0].MemberFullName)
	assert.True(t, parts[0].ExpectedAmount.Equal(decimal.NewFromInt(30000)))

	mine, err := svc.MemberTontines(ctx, awa.MemberID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestRegisterMemberRejectsInactive(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, model.TontineTypePresence, 50000)
	m := dbtest.Member(t, db, "Boris")
	require.NoError(t, db.Model(m).Update("member_status", memberModel.MemberStatusSuspended).Error)

	_, err := svc.RegisterMember(ctx, tn.TontineID, dto.RegisterMemberRequest{MemberID: m.MemberID})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = svc.SetStatus(ctx, tn.TontineID, model.TontineStatusEnded)
	require.NoError(t, err)
	other := dbtest.Member(t, db, "Chantal")
	_, err = svc.RegisterMember(ctx, tn.TontineID, dto.RegisterMemberRequest{MemberID: other.MemberID})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
