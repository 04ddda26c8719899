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
	balance "njangitech_backend/internals/features/balance/service"
	ledgerModel "njangitech_backend/internals/features/ledger/model"
	"njangitech_backend/internals/features/projects/dto"
	"njangitech_backend/internals/features/projects/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/helpers/apperror"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAllocateFunds(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, balance.New(db))
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)
	dbtest.Fund(t, db, tn.TontineID, 150000)

	p, err := svc.Create(ctx, dto.CreateProjectRequest{
		ProjectTontineID: tn.TontineID,
		ProjectName:      "Community well",
		ProjectBudget:    d(100000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusPlanned, p.ProjectStatus)

	p, err = svc.AllocateFunds(ctx, p.ProjectID, d(30000))
	require.NoError(t, err)
	assert.True(t, p.ProjectAmountAllocated.Equal(d(30000)))
	assert.Equal(t, model.ProjectStatusFundraising, p.ProjectStatus)

	p, err = svc.AllocateFunds(ctx, p.ProjectID, d(70000))
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusInProgress, p.ProjectStatus)

	// 50000 left in hand
	_, err = svc.AllocateFunds(ctx, p.ProjectID, d(60000))
	assert.True(t, errors.Is(err, apperror.ErrInsufficientFunds))

	p, err = svc.AllocateFunds(ctx, p.ProjectID, d(-20000))
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusFundraising, p.ProjectStatus)
	assert.True(t, p.ProjectAmountAllocated.Equal(d(80000)))

	_, err = svc.AllocateFunds(ctx, p.ProjectID, d(-90000))
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	var entries []ledgerModel.TransactionModel
	require.NoError(t, db.Find(&entries).Error)
	types := map[string]decimal.Decimal{}
	for _, e := range entries {
		types[e.TransactionType] = types[e.TransactionType].Add(e.TransactionAmount)
	}
	assert.True(t, types[ledgerModel.TransactionTypeProjectExpense].Equal(d(-100000)))
	assert.True(t, types[ledgerModel.TransactionTypeAdjustment].Equal(d(20000)))

	bal, err := balance.New(db).CalculateTontineBalance(ctx, tn.TontineID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(d(70000)), bal.String())
}

func TestCompleteAndCancelProject(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, balance.New(db))
	ctx := context.Background()
	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 10000)

	p, err := svc.Create(ctx, dto.CreateProjectRequest{ProjectTontineID: tn.TontineID, ProjectName: "Hall", ProjectBudget: d(1000)})
	require.NoError(t, err)

	p, err = svc.Complete(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusCompleted, p.ProjectStatus)
	require.NotNil(t, p.ProjectCompletedAt)

	_, err = svc.AllocateFunds(ctx, p.ProjectID, d(10))
	assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))

	p, err = svc.Cancel(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusCancelled, p.ProjectStatus)

	_, err = svc.Complete(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrProjectNotFound))
	_, err = svc.AllocateFunds(ctx, uuid.New(), d(10))
	assert.True(t, errors.Is(err, apperror.ErrProjectNotFound))
}
