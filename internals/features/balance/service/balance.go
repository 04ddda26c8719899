// Package service computes a tontine's cash in hand from its raw rows.
// Nothing is cached: every call reads the rows again.
package service

import (
	"github.com/shopspring/decimal"
)

type CreditRow struct {
	Amount       decimal.NullDecimal
	AmountRepaid decimal.NullDecimal
	Status       string
}

type PenaltyRow struct {
	Amount     decimal.NullDecimal
	AmountPaid decimal.NullDecimal
	Status     string
}

// Rows are the monetary columns of one tontine. Null values count as zero.
type Rows struct {
	Contributions []decimal.NullDecimal
	Credits       []CreditRow
	Penalties     []PenaltyRow
	Tours         []decimal.NullDecimal
	Projects      []decimal.NullDecimal
}

type Breakdown struct {
	Contributions      decimal.Decimal `json:"contributions"`
	PenaltiesCollected decimal.Decimal `json:"penalties_collected"`
	CreditRepayments   decimal.Decimal `json:"credit_repayments"`
	CreditsGranted     decimal.Decimal `json:"credits_granted"`
	ToursDistributed   decimal.Decimal `json:"tours_distributed"`
	ProjectAllocations decimal.Decimal `json:"project_allocations"`

	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func sum(values []decimal.NullDecimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(orZero(v))
	}
	return total
}

// Compute reduces the rows to a signed balance:
//
//	inflow  = contributions + collected penalties + credit repayments
//	outflow = credits past pending/rejected + tours + project allocations
//
// A paid or partially paid penalty counts its amount paid, or its full
// amount when no payment was recorded.
func Compute(r Rows) Breakdown {
	var b Breakdown
	b.Contributions = sum(r.Contributions)

	b.PenaltiesCollected = decimal.Zero
	for _, p := range r.Penalties {
		if p.Status != "paid" && p.Status != "partially_paid" {
			continue
		}
		paid := orZero(p.AmountPaid)
		if paid.IsZero() {
			paid = orZero(p.Amount)
		}
		b.PenaltiesCollected = b.PenaltiesCollected.Add(paid)
	}

	b.CreditRepayments = decimal.Zero
	b.CreditsGranted = decimal.Zero
	for _, c := range r.Credits {
		b.CreditRepayments = b.CreditRepayments.Add(orZero(c.AmountRepaid))
		if c.Status != "pending" && c.Status != "rejected" {
			b.CreditsGranted = b.CreditsGranted.Add(orZero(c.Amount))
		}
	}

	b.ToursDistributed = sum(r.Tours)
	b.ProjectAllocations = sum(r.Projects)

	b.Inflow = b.Contributions.Add(b.PenaltiesCollected).Add(b.CreditRepayments)
	b.Outflow = b.CreditsGranted.Add(b.ToursDistributed).Add(b.ProjectAllocations)
	b.Balance = b.Inflow.Sub(b.Outflow)
	return b
}
