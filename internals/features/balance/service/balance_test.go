package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"njangitech_backend/internals/databases/dbtest"
	creditModel "njangitech_backend/internals/features/credits/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
)

func nd(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
}

var null = decimal.NullDecimal{}

func sampleRows() Rows {
	return Rows{
		Contributions: []decimal.NullDecimal{nd(50000), nd(50000), null},
		Credits: []CreditRow{
			{Amount: nd(30000), AmountRepaid: nd(10000), Status: "repaying"},
			{Amount: nd(99000), AmountRepaid: null, Status: "pending"},
			{Amount: nd(45000), AmountRepaid: null, Status: "rejected"},
			{Amount: nd(20000), AmountRepaid: nd(22000), Status: "completed"},
		},
		Penalties: []PenaltyRow{
			{Amount: nd(5000), AmountPaid: nd(5000), Status: "paid"},
			{Amount: nd(5000), AmountPaid: nd(2000), Status: "partially_paid"},
			{Amount: nd(3000), AmountPaid: null, Status: "paid"},
			{Amount: nd(5000), AmountPaid: null, Status: "unpaid"},
		},
		Tours:    []decimal.NullDecimal{nd(40000), null},
		Projects: []decimal.NullDecimal{nd(7000)},
	}
}

func TestComputeEmptyIsZero(t *testing.T) {
	b := Compute(Rows{})
	assert.True(t, b.Balance.IsZero())
	assert.True(t, b.Inflow.IsZero())
	assert.True(t, b.Outflow.IsZero())
}

func TestComputeBreakdown(t *testing.T) {
	b := Compute(sampleRows())
	assert.True(t, b.Contributions.Equal(decimal.NewFromInt(100000)))
	assert.True(t, b.PenaltiesCollected.Equal(decimal.NewFromInt(10000)))
	assert.True(t, b.CreditRepayments.Equal(decimal.NewFromInt(32000)))
	assert.True(t, b.CreditsGranted.Equal(decimal.NewFromInt(50000)))
	assert.True(t, b.ToursDistributed.Equal(decimal.NewFromInt(40000)))
	assert.True(t, b.ProjectAllocations.Equal(decimal.NewFromInt(7000)))
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(45000)), b.Balance.String())
}

func TestComputeIgnoresRowOrder(t *testing.T) {
	want := Compute(sampleRows()).Balance
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		r := sampleRows()
		rng.Shuffle(len(r.Contributions), func(a, b int) { r.Contributions[a], r.Contributions[b] = r.Contributions[b], r.Contributions[a] })
		rng.Shuffle(len(r.Credits), func(a, b int) { r.Credits[a], r.Credits[b] = r.Credits[b], r.Credits[a] })
		rng.Shuffle(len(r.Penalties), func(a, b int) { r.Penalties[a], r.Penalties[b] = r.Penalties[b], r.Penalties[a] })
		rng.Shuffle(len(r.Tours), func(a, b int) { r.Tours[a], r.Tours[b] = r.Tours[b], r.Tours[a] })
		assert.True(t, Compute(r).Balance.Equal(want))
	}
}

func TestCalculateTontineBalanceFromTables(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db)
	ctx := context.Background()

	tn := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	other := dbtest.Tontine(t, db, tontineModel.TontineTypePresence, 50000)
	m := dbtest.Member(t, db, "Amina")

	dbtest.Fund(t, db, tn.TontineID, 200000)
	dbtest.Fund(t, db, other.TontineID, 777)
	dbtest.Penalty(t, db, tn.TontineID, m.MemberID, 5000, 5000, "paid")
	dbtest.Penalty(t, db, tn.TontineID, m.MemberID, 5000, 0, "unpaid")
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

	bal, err := svc.CalculateTontineBalance(ctx, tn.TontineID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(165000)), bal.String())

	empty, err := svc.CalculateTontineBalance(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	b, err := svc.Breakdown(ctx, tn.TontineID)
	require.NoError(t, err)
	assert.True(t, b.PenaltiesCollected.Equal(decimal.NewFromInt(5000)))
}
