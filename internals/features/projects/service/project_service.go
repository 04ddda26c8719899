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
	"njangitech_backend/internals/features/projects/dto"
	"njangitech_backend/internals/features/projects/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
	"njangitech_backend/internals/helpers/metrics"
)

type BalanceCalculator interface {
	CalculateTx(ctx context.Context, tx *gorm.DB, tontineID uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	DB      *gorm.DB
	Balance BalanceCalculator
	Now     func() time.Time
}

func New(db *gorm.DB, balance BalanceCalculator) *Service {
	return &Service{DB: db, Balance: balance, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, req dto.CreateProjectRequest) (*model.ProjectModel, error) {
	req.Normalize()
	if req.ProjectName == "" {
		return nil, apperror.Validation("project name is required")
	}
	if !req.ProjectBudget.IsPositive() {
		return nil, apperror.Validation("project budget must be positive")
	}
	if _, err := repository.FindTontine(ctx, s.DB, req.ProjectTontineID); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	if req.ProjectResponsibleID != nil {
		var m memberModel.MemberModel
		if err := db.Where("member_id = ?", *req.ProjectResponsibleID).Take(&m).Error; err != nil {
			return nil, apperror.NotFoundOr(err, apperror.ErrMemberNotFound)
		}
	}

	p := &model.ProjectModel{
		ProjectTontineID:       req.ProjectTontineID,
		ProjectResponsibleID:   req.ProjectResponsibleID,
		ProjectName:            req.ProjectName,
		ProjectDescription:     req.ProjectDescription,
		ProjectBudget:          req.ProjectBudget,
		ProjectAmountAllocated: decimal.Zero,
		ProjectStatus:          model.ProjectStatusPlanned,
		ProjectStartDate:       req.ProjectStartDate,
	}
	if err := db.Create(p).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	return p, nil
}

func lockProject(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ProjectModel, error) {
	var peek model.ProjectModel
	if err := tx.WithContext(ctx).Select("project_id", "project_tontine_id").
		Where("project_id = ?", id).Take(&peek).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrProjectNotFound)
	}
	if _, err := repository.LockTontine(ctx, tx, peek.ProjectTontineID); err != nil {
		return nil, err
	}
	var p model.ProjectModel
	if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", id).Take(&p).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrProjectNotFound)
	}
	return &p, nil
}

// AllocateFunds moves cash between the tontine and a project. A positive
// amount needs that much cash in hand and is booked as project_expense; a
// negative amount returns money and is booked as an adjustment.
func (s *Service) AllocateFunds(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*model.ProjectModel, error) {
	if amount.IsZero() {
		return nil, apperror.Validation("allocation amount must not be zero")
	}
	var out *model.ProjectModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if p.IsClosed() {
			return apperror.InvalidTransition("project", p.ProjectStatus, "allocate")
		}

		if amount.IsPositive() {
			bal, err := s.Balance.CalculateTx(ctx, tx, p.ProjectTontineID)
			if err != nil {
				return err
			}
			if bal.LessThan(amount) {
				metrics.InsufficientFunds.WithLabelValues("project_allocation").Inc()
				return apperror.ErrInsufficientFunds.With("balance %s is below allocation %s", bal.StringFixed(2), amount.StringFixed(2))
			}
		}

		total := p.ProjectAmountAllocated.Add(amount)
		if total.IsNegative() {
			return apperror.Validation("cannot withdraw %s, only %s is allocated", amount.Neg().StringFixed(2), p.ProjectAmountAllocated.StringFixed(2))
		}
		status := model.StatusAfterAllocation(p.ProjectStatus, total, p.ProjectBudget)
		if err := tx.Model(p).Updates(map[string]any{
			"project_amount_allocated": total,
			"project_status":           status,
		}).Error; err != nil {
			return apperror.FromDB(err)
		}
		p.ProjectAmountAllocated = total
		p.ProjectStatus = status

		entry := ledger.Entry{
			TontineID:     p.ProjectTontineID,
			Type:          ledgerModel.TransactionTypeProjectExpense,
			Amount:        amount.Neg(),
			Description:   "funds allocated to project " + p.ProjectName,
			ReferenceID:   &p.ProjectID,
			ReferenceType: "project",
		}
		if amount.IsNegative() {
			entry.Type = ledgerModel.TransactionTypeAdjustment
			entry.Description = "funds returned from project " + p.ProjectName
		}
		if _, err := ledger.AddTransaction(ctx, tx, entry); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "project funds allocated",
		zap.String("project_id", id.String()),
		zap.String("amount", amount.String()),
		zap.String("status", out.ProjectStatus),
	)
	return out, nil
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status string) (*model.ProjectModel, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"project_status": status}
	if status == model.ProjectStatusCompleted {
		now := s.Now()
		updates["project_completed_at"] = now
		p.ProjectCompletedAt = &now
	}
	if err := s.DB.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	p.ProjectStatus = status
	return p, nil
}

func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*model.ProjectModel, error) {
	return s.setStatus(ctx, id, model.ProjectStatusCompleted)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.ProjectModel, error) {
	return s.setStatus(ctx, id, model.ProjectStatusCancelled)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ProjectModel, error) {
	var p model.ProjectModel
	if err := s.DB.WithContext(ctx).Where("project_id = ?", id).Take(&p).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrProjectNotFound)
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context, q dto.ListProjectsQuery) ([]model.ProjectModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.ProjectModel{})
	if q.TontineID != nil {
		db = db.Where("project_tontine_id = ?", *q.TontineID)
	}
	if q.Status != "" {
		db = db.Where("project_status = ?", q.Status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.ProjectModel
	db = db.Order("project_created_at DESC").Order("project_id DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}
