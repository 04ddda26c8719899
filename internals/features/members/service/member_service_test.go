package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/databases/dbtest"
	"njangitech_backend/internals/features/members/dto"
	"njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/helpers/apperror"
)

func strPtr(s string) *string { return &s }

func TestCreateAndGet(t *testing.T) {
	svc := New(dbtest.New(t))
	ctx := context.Background()

	m, err := svc.Create(ctx, dto.CreateMemberRequest{
		MemberFullName: "  Awa Ngono ",
		MemberEmail:    strPtr(" Awa@Example.com "),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.MemberID)
	assert.Equal(t, "Awa Ngono", m.MemberFullName)
	assert.Equal(t, "awa@example.com", *m.MemberEmail)
	assert.Equal(t, model.MemberStatusActive, m.MemberStatus)

	got, err := svc.Get(ctx, m.MemberID)
	require.NoError(t, err)
	assert.Equal(t, m.MemberFullName, got.MemberFullName)

	_, err = svc.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrMemberNotFound))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := New(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateMemberRequest{MemberFullName: "Paul Etoa", MemberEmail: strPtr("paul@example.com")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateMemberRequest{MemberFullName: "Paul Bis", MemberEmail: strPtr("PAUL@example.com")})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestListAndStatus(t *testing.T) {
	svc := New(dbtest.New(t))
	ctx := context.Background()

	names := []string{"Chantal", "Boris", "Aline"}
	ids := make([]uuid.UUID, 0, len(names))
	for _, n := range names {
		m, err := svc.Create(ctx, dto.CreateMemberRequest{MemberFullName: n})
		require.NoError(t, err)
		ids = append(ids, m.MemberID)
	}

	_, err := svc.SetStatus(ctx, ids[1], model.MemberStatusSuspended)
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, ids[1], "retired")
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	rows, total, err := svc.List(ctx, dto.ListMembersQuery{Status: model.MemberStatusActive}, "member_full_name ASC")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Aline", rows[0].MemberFullName)
	assert.Equal(t, "Chantal", rows[1].MemberFullName)

	rows, _, err = svc.List(ctx, dto.ListMembersQuery{Search: "bor"}, "member_full_name ASC")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.MemberStatusSuspended, rows[0].MemberStatus)
}

func TestUpdate(t *testing.T) {
	svc := New(dbtest.New(t))
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateMemberRequest{MemberFullName: "Jean", MemberEmail: strPtr("jean@example.com")})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.CreateMemberRequest{MemberFullName: "Marie"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.MemberID, dto.UpdateMemberRequest{MemberEmail: strPtr("jean@example.com")})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	updated, err := svc.Update(ctx, a.MemberID, dto.UpdateMemberRequest{MemberPhone: strPtr("+237 650 00 00 00")})
	require.NoError(t, err)
	assert.Equal(t, "+237 650 00 00 00", *updated.MemberPhone)
	assert.Equal(t, "Jean", updated.MemberFullName)
}
