package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"njangitech_backend/internals/configs"
	"njangitech_backend/internals/features/credits/dto"
	"njangitech_backend/internals/features/credits/model"
	ledgerModel "njangitech_backend/internals/features/ledger/model"
	ledger "njangitech_backend/internals/features/ledger/service"
	memberModel "njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
	"njangitech_backend/internals/helpers/metrics"
)

// BalanceCalculator computes a tontine's cash in hand through the
// caller's transaction.
type BalanceCalculator interface {
	CalculateTx(ctx context.Context, tx *gorm.DB, tontineID uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	DB      *gorm.DB
	Balance BalanceCalculator
	Policy  model.OverduePolicy
	Now     func() time.Time
}

func New(db *gorm.DB, balance BalanceCalculator, rules configs.Rules) *Service {
	return &Service{
		DB:      db,
		Balance: balance,
		Policy: model.OverduePolicy{
			ProgressRatio:    rules.Credit.OverdueProgressRatio,
			DefaultAfterDays: rules.Credit.DefaultAfterDays,
		},
		Now: func() time.Time { return time.Now().UTC() },
	}
}

func lockCredit(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CreditModel, error) {
	var c model.CreditModel
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("credit_id = ?", id).
		Take(&c).Error
	if err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrCreditNotFound)
	}
	return &c, nil
}

// lockForCredit takes the tontine lock before the credit lock, the same
// order every money workflow uses.
func lockForCredit(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CreditModel, error) {
	var peek model.CreditModel
	if err := tx.WithContext(ctx).Select("credit_id", "credit_tontine_id").
		Where("credit_id = ?", id).Take(&peek).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrCreditNotFound)
	}
	if peek.CreditTontineID != nil {
		if _, err := repository.LockTontine(ctx, tx, *peek.CreditTontineID); err != nil {
			return nil, err
		}
	}
	return lockCredit(ctx, tx, id)
}

func hasOutstanding(ctx context.Context, db *gorm.DB, memberID uuid.UUID) (*model.CreditModel, error) {
	var rows []model.CreditModel
	err := db.WithContext(ctx).
		Where("credit_member_id = ? AND credit_status IN ?", memberID, model.OutstandingStatuses).
		Order("credit_created_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// RequestCredit files a pending credit. The member must hold no outstanding
// credit and, for a tontine credit, the tontine must hold at least the
// principal. Both checks run under the tontine lock before any write.
func (s *Service) RequestCredit(ctx context.Context, req dto.RequestCreditRequest) (*model.CreditModel, error) {
	req.Normalize()
	if !req.CreditAmount.IsPositive() {
		return nil, apperror.Validation("credit amount must be positive")
	}
	if req.CreditInterestRate.IsNegative() {
		return nil, apperror.Validation("interest rate must not be negative")
	}
	if !req.CreditDueDate.After(s.Now()) {
		return nil, apperror.Validation("due date must be in the future")
	}

	var out *model.CreditModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CreditTontineID != nil {
			if _, err := repository.LockTontine(ctx, tx, *req.CreditTontineID); err != nil {
				return err
			}
		}

		var m memberModel.MemberModel
		if err := tx.Where("member_id = ?", req.CreditMemberID).Take(&m).Error; err != nil {
			return apperror.NotFoundOr(err, apperror.ErrMemberNotFound)
		}
		if !m.IsActive() {
			return apperror.Validation("member is %s and cannot borrow", m.MemberStatus)
		}

		active, err := hasOutstanding(ctx, tx, m.MemberID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperror.ErrActiveCreditExists.With("member already holds credit %s (%s)", active.CreditID, active.CreditStatus)
		}

		if req.CreditTontineID != nil {
			bal, err := s.Balance.CalculateTx(ctx, tx, *req.CreditTontineID)
			if err != nil {
				return err
			}
			if bal.LessThan(req.CreditAmount) {
				metrics.InsufficientFunds.WithLabelValues("credit_request").Inc()
				return apperror.ErrInsufficientFunds.With("balance %s is below requested %s", bal.StringFixed(2), req.CreditAmount.StringFixed(2))
			}
		}

		c := &model.CreditModel{
			CreditMemberID:      m.MemberID,
			CreditTontineID:     req.CreditTontineID,
			CreditAmount:        req.CreditAmount,
			CreditInterestRate:  req.CreditInterestRate,
			CreditPayoffBalance: model.PayoffBalance(req.CreditAmount, req.CreditInterestRate),
			CreditAmountRepaid:  decimal.Zero,
			CreditPurpose:       req.CreditPurpose,
			CreditStatus:        model.CreditStatusPending,
			CreditDueDate:       req.CreditDueDate,
		}
		if err := tx.Create(c).Error; err != nil {
			return apperror.FromDB(err)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.CreditTransitions.WithLabelValues(model.CreditStatusPending).Inc()
	logger.InfoCtx(ctx, "credit requested",
		zap.String("credit_id", out.CreditID.String()),
		zap.String("member_id", out.CreditMemberID.String()),
		zap.String("amount", out.CreditAmount.String()),
	)
	return out, nil
}

// ensureFunds checks that the tontine can carry the credit. The balance
// already subtracts approved and running credits, so a credit that is
// counted must only keep the balance from going negative.
func (s *Service) ensureFunds(ctx context.Context, tx *gorm.DB, c *model.CreditModel, operation string) error {
	if c.CreditTontineID == nil {
		return nil
	}
	bal, err := s.Balance.CalculateTx(ctx, tx, *c.CreditTontineID)
	if err != nil {
		return err
	}
	available := bal
	if c.CreditStatus != model.CreditStatusPending && c.CreditStatus != model.CreditStatusRejected {
		available = bal.Add(c.CreditAmount)
	}
	if available.LessThan(c.CreditAmount) {
		metrics.InsufficientFunds.WithLabelValues(operation).Inc()
		return apperror.ErrInsufficientFunds.With("available %s is below principal %s", available.StringFixed(2), c.CreditAmount.StringFixed(2))
	}
	return nil
}

// transition applies a status event under the tontine and credit locks.
// Approval commits the principal, so it is checked against the balance.
func (s *Service) transition(ctx context.Context, id uuid.UUID, ev model.CreditEvent, stamp string) (*model.CreditModel, error) {
	var out *model.CreditModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockForCredit(ctx, tx, id)
		if err != nil {
			return err
		}
		next, ok := model.NextCreditStatus(c.CreditStatus, ev)
		if !ok {
			return apperror.InvalidTransition("credit", c.CreditStatus, string(ev))
		}
		if ev == model.CreditEventApprove {
			if err := s.ensureFunds(ctx, tx, c, "credit_approval"); err != nil {
				return err
			}
		}
		now := s.Now()
		updates := map[string]any{"credit_status": next}
		if stamp != "" {
			updates[stamp] = now
		}
		if err := tx.Model(c).Updates(updates).Error; err != nil {
			return apperror.FromDB(err)
		}
		c.CreditStatus = next
		if stamp == "credit_approved_at" {
			c.CreditApprovedAt = &now
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.CreditTransitions.WithLabelValues(out.CreditStatus).Inc()
	logger.InfoCtx(ctx, "credit "+string(ev),
		zap.String("credit_id", id.String()),
		zap.String("status", out.CreditStatus),
	)
	return out, nil
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*model.CreditModel, error) {
	return s.transition(ctx, id, model.CreditEventApprove, "credit_approved_at")
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*model.CreditModel, error) {
	return s.transition(ctx, id, model.CreditEventReject, "")
}

// Disburse hands the principal over and books it as a negative
// credit_granted entry in the same transaction. Funds are checked again
// under the tontine lock.
func (s *Service) Disburse(ctx context.Context, id uuid.UUID) (*model.CreditModel, error) {
	var out *model.CreditModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockForCredit(ctx, tx, id)
		if err != nil {
			return err
		}
		next, ok := model.NextCreditStatus(c.CreditStatus, model.CreditEventDisburse)
		if !ok {
			return apperror.InvalidTransition("credit", c.CreditStatus, string(model.CreditEventDisburse))
		}
		if err := s.ensureFunds(ctx, tx, c, "credit_disbursement"); err != nil {
			return err
		}
		now := s.Now()
		if err := tx.Model(c).Updates(map[string]any{
			"credit_status":       next,
			"credit_disbursed_at": now,
		}).Error; err != nil {
			return apperror.FromDB(err)
		}
		c.CreditStatus = next
		c.CreditDisbursedAt = &now

		if c.CreditTontineID != nil {
			if _, err := ledger.AddTransaction(ctx, tx, ledger.Entry{
				TontineID:     *c.CreditTontineID,
				Type:          ledgerModel.TransactionTypeCreditGranted,
				Amount:        c.CreditAmount.Neg(),
				Description:   "credit disbursed",
				ReferenceID:   &c.CreditID,
				ReferenceType: "credit",
				MemberID:      &c.CreditMemberID,
			}); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.CreditTransitions.WithLabelValues(out.CreditStatus).Inc()
	logger.InfoCtx(ctx, "credit disbursed",
		zap.String("credit_id", id.String()),
		zap.String("amount", out.CreditAmount.String()),
	)
	return out, nil
}

// Repay adds a payment to the credit. The credit completes once the
// repaid total reaches the payoff balance; an overdue or defaulted credit
// keeps its status until then.
func (s *Service) Repay(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*model.CreditModel, error) {
	if !amount.IsPositive() {
		return nil, apperror.Validation("repayment amount must be positive")
	}
	var out *model.CreditModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockForCredit(ctx, tx, id)
		if err != nil {
			return err
		}
		repaid := c.CreditAmountRepaid.Add(amount)
		ev := model.RepaymentEvent(repaid, c.CreditPayoffBalance)
		next, ok := model.NextCreditStatus(c.CreditStatus, ev)
		if !ok {
			return apperror.InvalidTransition("credit", c.CreditStatus, string(ev))
		}

		updates := map[string]any{
			"credit_amount_repaid": repaid,
			"credit_status":        next,
		}
		if next == model.CreditStatusCompleted {
			now := s.Now()
			updates["credit_completed_at"] = now
			c.CreditCompletedAt = &now
		}
		if err := tx.Model(c).Updates(updates).Error; err != nil {
			return apperror.FromDB(err)
		}
		c.CreditAmountRepaid = repaid
		c.CreditStatus = next

		if c.CreditTontineID != nil {
			if _, err := ledger.AddTransaction(ctx, tx, ledger.Entry{
				TontineID:     *c.CreditTontineID,
				Type:          ledgerModel.TransactionTypeCreditRepayment,
				Amount:        amount,
				Description:   "credit repayment",
				ReferenceID:   &c.CreditID,
				ReferenceType: "credit",
				MemberID:      &c.CreditMemberID,
				Metadata:      map[string]any{"amount_repaid": repaid.StringFixed(2)},
			}); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.CreditTransitions.WithLabelValues(out.CreditStatus).Inc()
	logger.InfoCtx(ctx, "credit repaid",
		zap.String("credit_id", id.String()),
		zap.String("amount", amount.String()),
		zap.String("status", out.CreditStatus),
	)
	return out, nil
}

// RefreshOverdueStatuses reclassifies running credits against their
// schedule. Running it twice without new payments changes nothing the
// second time.
func (s *Service) RefreshOverdueStatuses(ctx context.Context) (*dto.RefreshOverdueResult, error) {
	now := s.Now()
	res := &dto.RefreshOverdueResult{Credits: []model.CreditModel{}}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.CreditModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("credit_status IN ?", []string{
				model.CreditStatusDisbursed, model.CreditStatusRepaying, model.CreditStatusOverdue,
			}).
			Order("credit_due_date ASC").
			Find(&rows).Error; err != nil {
			return apperror.FromDB(err)
		}

		for i := range rows {
			c := &rows[i]
			ev, changed := model.OverdueEvent(c, now, s.Policy)
			if !changed {
				continue
			}
			next, ok := model.NextCreditStatus(c.CreditStatus, ev)
			if !ok {
				continue
			}
			if err := tx.Model(c).Update("credit_status", next).Error; err != nil {
				return apperror.FromDB(err)
			}
			c.CreditStatus = next
			res.Credits = append(res.Credits, *c)
		}
		res.Updated = len(res.Credits)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, c := range res.Credits {
		metrics.CreditTransitions.WithLabelValues(c.CreditStatus).Inc()
	}
	logger.InfoCtx(ctx, "overdue refresh", zap.Int("updated", res.Updated))
	return res, nil
}

func (s *Service) CheckMemberHasActiveCredit(ctx context.Context, memberID uuid.UUID) (bool, error) {
	c, err := hasOutstanding(ctx, s.DB, memberID)
	return c != nil, err
}

func (s *Service) ActiveCredit(ctx context.Context, memberID uuid.UUID) (*dto.ActiveCreditResponse, error) {
	c, err := hasOutstanding(ctx, s.DB, memberID)
	if err != nil {
		return nil, err
	}
	return &dto.ActiveCreditResponse{MemberID: memberID, HasActive: c != nil, ActiveCredit: c}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.CreditModel, error) {
	var c model.CreditModel
	if err := s.DB.WithContext(ctx).Where("credit_id = ?", id).Take(&c).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrCreditNotFound)
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, q dto.ListCreditsQuery, order string) ([]model.CreditModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.CreditModel{})
	if q.MemberID != nil {
		db = db.Where("credit_member_id = ?", *q.MemberID)
	}
	if q.TontineID != nil {
		db = db.Where("credit_tontine_id = ?", *q.TontineID)
	}
	if q.Status != "" {
		db = db.Where("credit_status = ?", q.Status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.CreditModel
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}
	if err := db.Order(order).Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}
