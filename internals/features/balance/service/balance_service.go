package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"njangitech_backend/internals/helpers/apperror"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// Load fetches every monetary row of a tontine through db, which may be a
// transaction holding the tontine lock.
func Load(ctx context.Context, db *gorm.DB, tontineID uuid.UUID) (Rows, error) {
	var r Rows
	q := db.WithContext(ctx)

	if err := q.Table("contributions").
		Where("contribution_tontine_id = ?", tontineID).
		Pluck("contribution_amount", &r.Contributions).Error; err != nil {
		return Rows{}, apperror.FromDB(err)
	}

	if err := q.Table("credits").
		Select("credit_amount AS amount, credit_amount_repaid AS amount_repaid, credit_status AS status").
		Where("credit_tontine_id = ?", tontineID).
		Scan(&r.Credits).Error; err != nil {
		return Rows{}, apperror.FromDB(err)
	}

	if err := q.Table("penalties").
		Select("penalty_amount AS amount, penalty_amount_paid AS amount_paid, penalty_status AS status").
		Where("penalty_tontine_id = ?", tontineID).
		Scan(&r.Penalties).Error; err != nil {
		return Rows{}, apperror.FromDB(err)
	}

	if err := q.Table("tours").
		Where("tour_tontine_id = ?", tontineID).
		Pluck("tour_amount", &r.Tours).Error; err != nil {
		return Rows{}, apperror.FromDB(err)
	}

	if err := q.Table("projects").
		Where("project_tontine_id = ?", tontineID).
		Pluck("project_amount_allocated", &r.Projects).Error; err != nil {
		return Rows{}, apperror.FromDB(err)
	}
	return r, nil
}

func (s *Service) Breakdown(ctx context.Context, tontineID uuid.UUID) (Breakdown, error) {
	rows, err := Load(ctx, s.DB, tontineID)
	if err != nil {
		return Breakdown{}, err
	}
	return Compute(rows), nil
}

// CalculateTontineBalance is the signed cash in hand of a tontine.
func (s *Service) CalculateTontineBalance(ctx context.Context, tontineID uuid.UUID) (decimal.Decimal, error) {
	return s.CalculateTx(ctx, s.DB, tontineID)
}

// CalculateTx computes the balance through tx.
func (s *Service) CalculateTx(ctx context.Context, tx *gorm.DB, tontineID uuid.UUID) (decimal.Decimal, error) {
	rows, err := Load(ctx, tx, tontineID)
	if err != nil {
		return decimal.Zero, err
	}
	return Compute(rows).Balance, nil
}
