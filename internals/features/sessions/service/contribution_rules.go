package service

import (
	"github.com/shopspring/decimal"

	"njangitech_backend/internals/features/sessions/dto"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/helpers/apperror"
)

// ValidateContribution checks a recorded amount against the tontine rules:
// a present member of a presence tontine pays exactly nb_parts times the
// base amount, an optional tontine takes any non-negative multiple of the
// base, and absent members pay nothing.
func ValidateContribution(t *tontineModel.TontineModel, nbParts int, rec dto.AttendanceRecord) error {
	base := t.TontineContributionAmount
	amount := rec.Amount

	if amount.IsNegative() {
		return apperror.Validation("amount must not be negative")
	}
	if !rec.Present {
		if !amount.IsZero() {
			return apperror.Validation("an absent member cannot record a contribution")
		}
		return nil
	}

	if t.IsPresence() {
		expected := base.Mul(decimal.NewFromInt(int64(nbParts)))
		if !amount.Equal(expected) {
			return apperror.Validation("amount must be exactly %s for a present member (nb_parts %d x %s)",
				expected.String(), nbParts, base.String())
		}
		return nil
	}

	if !amount.Mod(base).IsZero() {
		return apperror.Validation("amount must be a multiple of %s", base.String())
	}
	return nil
}
