package configs

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Rules are the business constants of the association. They can be
// overridden from a TOML file:
//
//	currency = "XAF"
//
//	[absence]
//	penalty_amount = "5000"
//	penalize_optional = true
//
//	[credit]
//	overdue_progress_ratio = 0.8
//	default_after_days = 90
type Rules struct {
	Currency string       `toml:"currency"`
	Absence  AbsenceRules `toml:"absence"`
	Credit   CreditRules  `toml:"credit"`
}

type AbsenceRules struct {
	PenaltyAmount    decimal.Decimal `toml:"penalty_amount"`
	PenalizeOptional bool            `toml:"penalize_optional"`
}

type CreditRules struct {
	// Fraction of the linear expected repayment below which a loan is overdue.
	OverdueProgressRatio float64 `toml:"overdue_progress_ratio"`
	// Days past the due date after which an overdue loan is defaulted.
	DefaultAfterDays int `toml:"default_after_days"`
}

func DefaultRules() Rules {
	return Rules{
		Currency: "XAF",
		Absence: AbsenceRules{
			PenaltyAmount:    decimal.NewFromInt(5000),
			PenalizeOptional: true,
		},
		Credit: CreditRules{
			OverdueProgressRatio: 0.8,
			DefaultAfterDays:     90,
		},
	}
}

// LoadRules reads path on top of the defaults. An empty path or a missing
// file yields the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return rules, nil
	}
	if _, err := toml.DecodeFile(path, &rules); err != nil {
		return Rules{}, fmt.Errorf("decode rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

func (r Rules) Validate() error {
	if r.Currency == "" {
		return errors.New("currency must not be empty")
	}
	if r.Absence.PenaltyAmount.IsNegative() {
		return errors.New("absence.penalty_amount must not be negative")
	}
	if r.Credit.OverdueProgressRatio <= 0 || r.Credit.OverdueProgressRatio > 1 {
		return fmt.Errorf("credit.overdue_progress_ratio must be in (0,1], got %v", r.Credit.OverdueProgressRatio)
	}
	if r.Credit.DefaultAfterDays < 0 {
		return errors.New("credit.default_after_days must not be negative")
	}
	return nil
}
