package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ledgerModel "njangitech_backend/internals/features/ledger/model"
	ledger "njangitech_backend/internals/features/ledger/service"
	memberModel "njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/features/penalties/dto"
	"njangitech_backend/internals/features/penalties/model"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
	"njangitech_backend/internals/helpers/metrics"
)

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

// Create records a manual penalty. A penalty tied to a session inherits
// the session's tontine.
func (s *Service) Create(ctx context.Context, req dto.CreatePenaltyRequest) (*model.PenaltyModel, error) {
	req.Normalize()
	if !model.IsValidPenaltyType(req.PenaltyType) {
		return nil, apperror.Validation("unknown penalty type %q", req.PenaltyType)
	}
	if !req.PenaltyAmount.IsPositive() {
		return nil, apperror.Validation("penalty amount must be positive")
	}

	db := s.DB.WithContext(ctx)
	var m memberModel.MemberModel
	if err := db.Where("member_id = ?", req.PenaltyMemberID).Take(&m).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrMemberNotFound)
	}

	tontineID := req.PenaltyTontineID
	if req.PenaltySessionID != nil {
		var sess sessionModel.SessionModel
		if err := db.Where("session_id = ?", *req.PenaltySessionID).Take(&sess).Error; err != nil {
			return nil, apperror.NotFoundOr(err, apperror.ErrSessionNotFound)
		}
		if tontineID != nil && *tontineID != sess.SessionTontineID {
			return nil, apperror.Validation("session belongs to another tontine")
		}
		tontineID = &sess.SessionTontineID
	} else if tontineID != nil {
		if _, err := repository.FindTontine(ctx, s.DB, *tontineID); err != nil {
			return nil, err
		}
	}

	p := &model.PenaltyModel{
		PenaltyMemberID:   m.MemberID,
		PenaltySessionID:  req.PenaltySessionID,
		PenaltyTontineID:  tontineID,
		PenaltyAmount:     req.PenaltyAmount,
		PenaltyAmountPaid: decimal.Zero,
		PenaltyReason:     req.PenaltyReason,
		PenaltyType:       req.PenaltyType,
		PenaltyStatus:     model.PenaltyStatusUnpaid,
	}
	if err := db.Create(p).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	metrics.PenaltiesCreated.WithLabelValues(p.PenaltyType).Inc()
	return p, nil
}

func lockPenalty(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PenaltyModel, error) {
	var peek model.PenaltyModel
	if err := tx.WithContext(ctx).Select("penalty_id", "penalty_tontine_id").
		Where("penalty_id = ?", id).Take(&peek).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrPenaltyNotFound)
	}
	if peek.PenaltyTontineID != nil {
		if _, err := repository.LockTontine(ctx, tx, *peek.PenaltyTontineID); err != nil {
			return nil, err
		}
	}
	var p model.PenaltyModel
	if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("penalty_id = ?", id).Take(&p).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrPenaltyNotFound)
	}
	return &p, nil
}

// Pay collects part or all of a penalty and books the cash as a penalty
// entry in the ledger.
func (s *Service) Pay(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*model.PenaltyModel, error) {
	if !amount.IsPositive() {
		return nil, apperror.Validation("payment amount must be positive")
	}
	var out *model.PenaltyModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPenalty(ctx, tx, id)
		if err != nil {
			return err
		}
		switch p.PenaltyStatus {
		case model.PenaltyStatusUnpaid, model.PenaltyStatusPartiallyPaid:
		default:
			return apperror.InvalidTransition("penalty", p.PenaltyStatus, "pay")
		}
		if amount.GreaterThan(p.Outstanding()) {
			return apperror.Validation("payment %s exceeds the %s still owed", amount.StringFixed(2), p.Outstanding().StringFixed(2))
		}

		paid := p.PenaltyAmountPaid.Add(amount)
		status := model.PenaltyStatusPartiallyPaid
		updates := map[string]any{"penalty_amount_paid": paid}
		if paid.GreaterThanOrEqual(p.PenaltyAmount) {
			status = model.PenaltyStatusPaid
			now := s.Now()
			updates["penalty_paid_at"] = now
			p.PenaltyPaidAt = &now
		}
		updates["penalty_status"] = status
		if err := tx.Model(p).Updates(updates).Error; err != nil {
			return apperror.FromDB(err)
		}
		p.PenaltyAmountPaid = paid
		p.PenaltyStatus = status

		if p.PenaltyTontineID != nil {
			if _, err := ledger.AddTransaction(ctx, tx, ledger.Entry{
				TontineID:     *p.PenaltyTontineID,
				Type:          ledgerModel.TransactionTypePenalty,
				Amount:        amount,
				Description:   "penalty payment: " + p.PenaltyReason,
				ReferenceID:   &p.PenaltyID,
				ReferenceType: "penalty",
				MemberID:      &p.PenaltyMemberID,
			}); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "penalty paid",
		zap.String("penalty_id", id.String()),
		zap.String("amount", amount.String()),
		zap.String("status", out.PenaltyStatus),
	)
	return out, nil
}

// Cancel voids a penalty nothing has been collected on.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.PenaltyModel, error) {
	var out *model.PenaltyModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPenalty(ctx, tx, id)
		if err != nil {
			return err
		}
		if p.PenaltyStatus != model.PenaltyStatusUnpaid {
			return apperror.InvalidTransition("penalty", p.PenaltyStatus, "cancel")
		}
		if err := tx.Model(p).Update("penalty_status", model.PenaltyStatusCancelled).Error; err != nil {
			return apperror.FromDB(err)
		}
		p.PenaltyStatus = model.PenaltyStatusCancelled
		out = p
		return nil
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.PenaltyModel, error) {
	var p model.PenaltyModel
	if err := s.DB.WithContext(ctx).Where("penalty_id = ?", id).Take(&p).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrPenaltyNotFound)
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context, q dto.ListPenaltiesQuery) ([]model.PenaltyModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.PenaltyModel{})
	if q.MemberID != nil {
		db = db.Where("penalty_member_id = ?", *q.MemberID)
	}
	if q.SessionID != nil {
		db = db.Where("penalty_session_id = ?", *q.SessionID)
	}
	if q.TontineID != nil {
		db = db.Where("penalty_tontine_id = ?", *q.TontineID)
	}
	if q.Status != "" {
		db = db.Where("penalty_status = ?", q.Status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.PenaltyModel
	db = db.Order("penalty_created_at DESC").Order("penalty_id DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}
