package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CreditStatusPending   = "pending"
	CreditStatusApproved  = "approved"
	CreditStatusRejected  = "rejected"
	CreditStatusDisbursed = "disbursed"
	CreditStatusRepaying  = "repaying"
	CreditStatusCompleted = "completed"
	CreditStatusOverdue   = "overdue"
	CreditStatusDefaulted = "defaulted"
)

// OutstandingStatuses hold disbursed money that has not been paid back.
// A member may have at most one credit in any of them.
var OutstandingStatuses = []string{
	CreditStatusDisbursed,
	CreditStatusRepaying,
	CreditStatusOverdue,
	CreditStatusDefaulted,
}

type CreditEvent string

const (
	CreditEventApprove     CreditEvent = "approve"
	CreditEventReject      CreditEvent = "reject"
	CreditEventDisburse    CreditEvent = "disburse"
	CreditEventRepay       CreditEvent = "repay"
	CreditEventPayOff      CreditEvent = "pay_off"
	CreditEventMarkOverdue CreditEvent = "mark_overdue"
	CreditEventDefault     CreditEvent = "default"
)

var creditTransitions = map[string]map[CreditEvent]string{
	CreditStatusPending: {
		CreditEventApprove: CreditStatusApproved,
		CreditEventReject:  CreditStatusRejected,
	},
	CreditStatusApproved: {
		CreditEventDisburse: CreditStatusDisbursed,
		CreditEventReject:   CreditStatusRejected,
	},
	CreditStatusDisbursed: {
		CreditEventRepay:       CreditStatusRepaying,
		CreditEventPayOff:      CreditStatusCompleted,
		CreditEventMarkOverdue: CreditStatusOverdue,
		CreditEventDefault:     CreditStatusDefaulted,
	},
	CreditStatusRepaying: {
		CreditEventRepay:       CreditStatusRepaying,
		CreditEventPayOff:      CreditStatusCompleted,
		CreditEventMarkOverdue: CreditStatusOverdue,
		CreditEventDefault:     CreditStatusDefaulted,
	},
	CreditStatusOverdue: {
		CreditEventRepay:   CreditStatusOverdue,
		CreditEventPayOff:  CreditStatusCompleted,
		CreditEventDefault: CreditStatusDefaulted,
	},
	CreditStatusDefaulted: {
		CreditEventRepay:  CreditStatusDefaulted,
		CreditEventPayOff: CreditStatusCompleted,
	},
}

// NextCreditStatus is the credit lifecycle as a pure transition function.
func NextCreditStatus(from string, ev CreditEvent) (string, bool) {
	to, ok := creditTransitions[from][ev]
	return to, ok
}

// RepaymentEvent picks the event a repayment raises once the new
// repaid total is known.
func RepaymentEvent(repaid, payoff decimal.Decimal) CreditEvent {
	if repaid.GreaterThanOrEqual(payoff) {
		return CreditEventPayOff
	}
	return CreditEventRepay
}

type OverduePolicy struct {
	ProgressRatio    float64
	DefaultAfterDays int
}

// OverdueEvent decides whether a credit has fallen behind at now.
//
// Running credits (disbursed, repaying) become overdue when the due date has
// passed or when repaid/payoff is below ProgressRatio times the linear
// expected progress (whole days elapsed / whole days of the term). Overdue
// credits default DefaultAfterDays after the due date, and so does a running
// credit first seen that late, so one refresh settles it. A term of zero
// days is only judged on its due date.
func OverdueEvent(c *CreditModel, now time.Time, p OverduePolicy) (CreditEvent, bool) {
	pastDefault := now.After(c.CreditDueDate.AddDate(0, 0, p.DefaultAfterDays))
	switch c.CreditStatus {
	case CreditStatusDisbursed, CreditStatusRepaying:
		if pastDefault {
			return CreditEventDefault, true
		}
	case CreditStatusOverdue:
		if pastDefault {
			return CreditEventDefault, true
		}
		return "", false
	default:
		return "", false
	}

	if now.After(c.CreditDueDate) {
		return CreditEventMarkOverdue, true
	}

	start := c.CreditCreatedAt
	if c.CreditDisbursedAt != nil {
		start = *c.CreditDisbursedAt
	}
	totalDays := wholeDays(c.CreditDueDate.Sub(start))
	if totalDays <= 0 || c.CreditPayoffBalance.Sign() <= 0 {
		return "", false
	}
	elapsedDays := wholeDays(now.Sub(start))
	if elapsedDays <= 0 {
		return "", false
	}

	expected := decimal.NewFromInt(elapsedDays).Div(decimal.NewFromInt(totalDays))
	actual := c.CreditAmountRepaid.Div(c.CreditPayoffBalance)
	threshold := expected.Mul(decimal.NewFromFloat(p.ProgressRatio))
	if actual.LessThan(threshold) {
		return CreditEventMarkOverdue, true
	}
	return "", false
}

func wholeDays(d time.Duration) int64 {
	return int64(d / (24 * time.Hour))
}
