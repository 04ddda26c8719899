package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/contributions/model"
	"njangitech_backend/internals/helpers/apperror"
)

type ListFilter struct {
	TontineID *uuid.UUID
	SessionID *uuid.UUID
	MemberID  *uuid.UUID
	Status    string
	Offset    int
	Limit     int
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

func (s *Service) List(ctx context.Context, f ListFilter) ([]model.ContributionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.ContributionModel{})
	if f.TontineID != nil {
		q = q.Where("contribution_tontine_id = ?", *f.TontineID)
	}
	if f.SessionID != nil {
		q = q.Where("contribution_session_id = ?", *f.SessionID)
	}
	if f.MemberID != nil {
		q = q.Where("contribution_member_id = ?", *f.MemberID)
	}
	if f.Status != "" {
		q = q.Where("contribution_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.ContributionModel
	q = q.Order("contribution_created_at DESC").Order("contribution_id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}

// TotalPaid sums what a member paid across every session.
func (s *Service) TotalPaid(ctx context.Context, memberID uuid.UUID) (decimal.Decimal, error) {
	var vals []decimal.NullDecimal
	err := s.DB.WithContext(ctx).Model(&model.ContributionModel{}).
		Where("contribution_member_id = ?", memberID).
		Pluck("contribution_amount", &vals).Error
	if err != nil {
		return decimal.Zero, apperror.FromDB(err)
	}
	total := decimal.Zero
	for _, v := range vals {
		if v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	return total, nil
}
