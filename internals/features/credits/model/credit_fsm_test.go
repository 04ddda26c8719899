package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNextCreditStatus(t *testing.T) {
	tests := []struct {
		from string
		ev   CreditEvent
		to   string
		ok   bool
	}{
		{CreditStatusPending, CreditEventApprove, CreditStatusApproved, true},
		{CreditStatusPending, CreditEventDisburse, "", false},
		{CreditStatusApproved, CreditEventDisburse, CreditStatusDisbursed, true},
		{CreditStatusApproved, CreditEventApprove, "", false},
		{CreditStatusDisbursed, CreditEventRepay, CreditStatusRepaying, true},
		{CreditStatusRepaying, CreditEventPayOff, CreditStatusCompleted, true},
		{CreditStatusRepaying, CreditEventMarkOverdue, CreditStatusOverdue, true},
		{CreditStatusOverdue, CreditEventRepay, CreditStatusOverdue, true},
		{CreditStatusOverdue, CreditEventDefault, CreditStatusDefaulted, true},
		{CreditStatusRepaying, CreditEventDefault, CreditStatusDefaulted, true},
		{CreditStatusDefaulted, CreditEventPayOff, CreditStatusCompleted, true},
		{CreditStatusCompleted, CreditEventRepay, "", false},
		{CreditStatusRejected, CreditEventApprove, "", false},
		{CreditStatusPending, CreditEventRepay, "", false},
	}
	for _, tt := range tests {
		to, ok := NextCreditStatus(tt.from, tt.ev)
		assert.Equal(t, tt.ok, ok, "%s --%s-->", tt.from, tt.ev)
		assert.Equal(t, tt.to, to, "%s --%s-->", tt.from, tt.ev)
	}
}

func TestPayoffBalance(t *testing.T) {
	assert.Equal(t, "110000", PayoffBalance(decimal.NewFromInt(100000), decimal.NewFromInt(10)).String())
	assert.Equal(t, "50000", PayoffBalance(decimal.NewFromInt(50000), decimal.Zero).String())
	assert.Equal(t, "1012.5", PayoffBalance(decimal.NewFromInt(1000), decimal.RequireFromString("1.25")).String())
}

func TestRepaymentEvent(t *testing.T) {
	payoff := decimal.NewFromInt(110000)
	assert.Equal(t, CreditEventRepay, RepaymentEvent(decimal.NewFromInt(60000), payoff))
	assert.Equal(t, CreditEventPayOff, RepaymentEvent(decimal.NewFromInt(110000), payoff))
	assert.Equal(t, CreditEventPayOff, RepaymentEvent(decimal.NewFromInt(120000), payoff))
}

func TestOverdueEvent(t *testing.T) {
	policy := OverduePolicy{ProgressRatio: 0.8, DefaultAfterDays: 90}
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 100)

	credit := func(status string, repaid int64) *CreditModel {
		return &CreditModel{
			CreditStatus:        status,
			CreditPayoffBalance: decimal.NewFromInt(100000),
			CreditAmountRepaid:  decimal.NewFromInt(repaid),
			CreditDueDate:       due,
			CreditDisbursedAt:   &start,
		}
	}

	tests := []struct {
		name   string
		c      *CreditModel
		now    time.Time
		ev     CreditEvent
		change bool
	}{
		// day 50: expected 50%, threshold 40%
		{"on track", credit(CreditStatusRepaying, 45000), start.AddDate(0, 0, 50), "", false},
		{"exactly at threshold", credit(CreditStatusRepaying, 40000), start.AddDate(0, 0, 50), "", false},
		{"behind schedule", credit(CreditStatusRepaying, 39000), start.AddDate(0, 0, 50), CreditEventMarkOverdue, true},
		{"disbursed and untouched", credit(CreditStatusDisbursed, 0), start.AddDate(0, 0, 10), CreditEventMarkOverdue, true},
		{"same day as disbursement", credit(CreditStatusDisbursed, 0), start.Add(2 * time.Hour), "", false},
		{"past due", credit(CreditStatusRepaying, 99000), due.Add(time.Hour), CreditEventMarkOverdue, true},
		{"overdue within grace", credit(CreditStatusOverdue, 0), due.AddDate(0, 0, 30), "", false},
		{"overdue beyond grace", credit(CreditStatusOverdue, 0), due.AddDate(0, 0, 91), CreditEventDefault, true},
		{"repaying first seen beyond grace", credit(CreditStatusRepaying, 20000), due.AddDate(0, 0, 91), CreditEventDefault, true},
		{"disbursed first seen beyond grace", credit(CreditStatusDisbursed, 0), due.AddDate(0, 0, 200), CreditEventDefault, true},
		{"completed ignored", credit(CreditStatusCompleted, 100000), due.AddDate(1, 0, 0), "", false},
		{"pending ignored", credit(CreditStatusPending, 0), due.AddDate(1, 0, 0), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := OverdueEvent(tt.c, tt.now, policy)
			assert.Equal(t, tt.change, ok)
			assert.Equal(t, tt.ev, ev)
		})
	}
}

func TestOverdueEventZeroDayLoan(t *testing.T) {
	policy := OverduePolicy{ProgressRatio: 0.8, DefaultAfterDays: 90}
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	c := &CreditModel{
		CreditStatus:        CreditStatusDisbursed,
		CreditPayoffBalance: decimal.NewFromInt(1000),
		CreditAmountRepaid:  decimal.Zero,
		CreditDueDate:       start.Add(6 * time.Hour),
		CreditDisbursedAt:   &start,
	}

	_, ok := OverdueEvent(c, start.Add(time.Hour), policy)
	assert.False(t, ok)

	ev, ok := OverdueEvent(c, start.Add(7*time.Hour), policy)
	assert.True(t, ok)
	assert.Equal(t, CreditEventMarkOverdue, ev)
}
