package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/ledger/model"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/metrics"
)

// Entry is what callers hand to AddTransaction.
type Entry struct {
	TontineID     uuid.UUID
	Type          string
	Amount        decimal.Decimal
	Description   string
	ReferenceID   *uuid.UUID
	ReferenceType string
	MemberID      *uuid.UUID
	Metadata      map[string]any
}

// AddTransaction appends one ledger entry with a fresh id and timestamp.
// Pass the workflow's transaction as db so the entry commits with it.
func AddTransaction(ctx context.Context, db *gorm.DB, e Entry) (*model.TransactionModel, error) {
	if e.TontineID == uuid.Nil {
		return nil, apperror.Validation("ledger entry needs a tontine")
	}
	if !model.IsValidTransactionType(e.Type) {
		return nil, apperror.Validation("unknown transaction type %q", e.Type)
	}
	if e.Amount.IsZero() {
		return nil, apperror.Validation("ledger entry amount must not be zero")
	}

	row := &model.TransactionModel{
		TransactionID:          uuid.New(),
		TransactionTontineID:   e.TontineID,
		TransactionType:        e.Type,
		TransactionAmount:      e.Amount,
		TransactionDescription: strings.TrimSpace(e.Description),
		TransactionReferenceID: e.ReferenceID,
		TransactionMemberID:    e.MemberID,
		TransactionCreatedAt:   time.Now().UTC(),
	}
	if e.ReferenceType != "" {
		rt := e.ReferenceType
		row.TransactionReferenceType = &rt
	}
	if len(e.Metadata) > 0 {
		row.TransactionMetadata = datatypes.JSONMap(e.Metadata)
	}

	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	metrics.LedgerEntries.WithLabelValues(e.Type).Inc()
	return row, nil
}

type ListFilter struct {
	TontineID uuid.UUID
	Type      string
	MemberID  *uuid.UUID
	Offset    int
	Limit     int
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// List returns entries newest first and the total matching count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]model.TransactionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("transaction_tontine_id = ?", f.TontineID)
	if f.Type != "" {
		q = q.Where("transaction_type = ?", f.Type)
	}
	if f.MemberID != nil {
		q = q.Where("transaction_member_id = ?", *f.MemberID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}

	var rows []model.TransactionModel
	q = q.Order("transaction_created_at DESC").Order("transaction_id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}

// Total sums every entry of a tontine.
func (s *Service) Total(ctx context.Context, tontineID uuid.UUID) (decimal.Decimal, error) {
	var amounts []decimal.NullDecimal
	err := s.DB.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("transaction_tontine_id = ?", tontineID).
		Pluck("transaction_amount", &amounts).Error
	if err != nil {
		return decimal.Zero, apperror.FromDB(err)
	}
	total := decimal.Zero
	for _, a := range amounts {
		if a.Valid {
			total = total.Add(a.Decimal)
		}
	}
	return total, nil
}

// RecordAdjustment writes a correction entry. Corrections never edit
// existing rows.
func (s *Service) RecordAdjustment(ctx context.Context, tontineID uuid.UUID, amount decimal.Decimal, description string, memberID *uuid.UUID) (*model.TransactionModel, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperror.Validation("an adjustment needs a description")
	}
	var out *model.TransactionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table("tontines").Where("tontine_id = ?", tontineID).Count(&n).Error; err != nil {
			return apperror.FromDB(err)
		}
		if n == 0 {
			return apperror.ErrTontineNotFound
		}
		row, err := AddTransaction(ctx, tx, Entry{
			TontineID:   tontineID,
			Type:        model.TransactionTypeAdjustment,
			Amount:      amount,
			Description: description,
			MemberID:    memberID,
		})
		if err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record adjustment: %w", err)
	}
	return out, nil
}
