package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	contributionModel "njangitech_backend/internals/features/contributions/model"
	ledgerModel "njangitech_backend/internals/features/ledger/model"
	ledger "njangitech_backend/internals/features/ledger/service"
	memberModel "njangitech_backend/internals/features/members/model"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/features/tours/dto"
	"njangitech_backend/internals/features/tours/model"
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

func loadTours(ctx context.Context, db *gorm.DB, tontineID uuid.UUID) ([]model.TourModel, error) {
	var tours []model.TourModel
	err := db.WithContext(ctx).
		Where("tour_tontine_id = ?", tontineID).
		Order("tour_number ASC").
		Find(&tours).Error
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return tours, nil
}

// AssignTour pays the pot to a beneficiary. Under the tontine lock it
// checks the rotation, the cash in hand and, for optional tontines, the
// beneficiary's cap, then books a negative tour_distribution entry.
func (s *Service) AssignTour(ctx context.Context, req dto.AssignTourRequest) (*model.TourModel, error) {
	if !req.TourAmount.IsPositive() {
		return nil, apperror.Validation("tour amount must be positive")
	}

	var out *model.TourModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := repository.LockTontine(ctx, tx, req.TourTontineID)
		if err != nil {
			return err
		}
		if !t.IsActive() {
			return apperror.Validation("tontine is %s", t.TontineStatus)
		}
		if req.TourSessionID != nil {
			var sess sessionModel.SessionModel
			if err := tx.Where("session_id = ?", *req.TourSessionID).Take(&sess).Error; err != nil {
				return apperror.NotFoundOr(err, apperror.ErrSessionNotFound)
			}
			if sess.SessionTontineID != t.TontineID {
				return apperror.Validation("session belongs to another tontine")
			}
		}

		part, err := repository.FindParticipation(ctx, tx, t.TontineID, req.TourBeneficiaryID)
		if err != nil {
			return err
		}
		if !part.ParticipationActive {
			return apperror.Validation("member no longer participates in this tontine")
		}

		parts, err := repository.ListParticipants(ctx, tx, t.TontineID)
		if err != nil {
			return err
		}
		tours, err := loadTours(ctx, tx, t.TontineID)
		if err != nil {
			return err
		}
		rot := PlanRotation(parts, tours)
		if err := rot.Check(req.TourBeneficiaryID); err != nil {
			return err
		}

		bal, err := s.Balance.CalculateTx(ctx, tx, t.TontineID)
		if err != nil {
			return err
		}
		if bal.LessThan(req.TourAmount) {
			metrics.InsufficientFunds.WithLabelValues("tour").Inc()
			return apperror.ErrInsufficientFunds.With("balance %s is below tour amount %s", bal.StringFixed(2), req.TourAmount.StringFixed(2))
		}

		if !t.IsPresence() {
			received := decimal.Zero
			for _, tr := range tours {
				if tr.TourBeneficiaryID == req.TourBeneficiaryID {
					received = received.Add(tr.TourAmount)
				}
			}
			limit := part.ExpectedAmount(t.TontineContributionAmount).Mul(decimal.NewFromInt(int64(len(parts))))
			if received.Add(req.TourAmount).GreaterThan(limit) {
				return apperror.Validation("member would receive %s, above the %s allowed (%d part(s) x %s x %d tours)",
					received.Add(req.TourAmount).StringFixed(2), limit.StringFixed(2),
					part.ParticipationNbParts, t.TontineContributionAmount.StringFixed(2), len(parts))
			}
		}

		tour := &model.TourModel{
			TourTontineID:     t.TontineID,
			TourNumber:        rot.Number,
			TourCycle:         rot.Cycle,
			TourCyclePosition: rot.Position,
			TourBeneficiaryID: req.TourBeneficiaryID,
			TourSessionID:     req.TourSessionID,
			TourAmount:        req.TourAmount,
			TourDistributedAt: s.Now(),
		}
		if err := tx.Create(tour).Error; err != nil {
			return apperror.FromDB(err)
		}

		if _, err := ledger.AddTransaction(ctx, tx, ledger.Entry{
			TontineID:     t.TontineID,
			Type:          ledgerModel.TransactionTypeTourDistribution,
			Amount:        req.TourAmount.Neg(),
			Description:   fmt.Sprintf("tour #%d distributed", tour.TourNumber),
			ReferenceID:   &tour.TourID,
			ReferenceType: "tour",
			MemberID:      &tour.TourBeneficiaryID,
			Metadata:      map[string]any{"cycle": tour.TourCycle, "cycle_position": tour.TourCyclePosition},
		}); err != nil {
			return err
		}
		out = tour
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "tour assigned",
		zap.String("tour_id", out.TourID.String()),
		zap.Int("number", out.TourNumber),
		zap.Int("cycle", out.TourCycle),
		zap.String("amount", out.TourAmount.String()),
	)
	return out, nil
}

// EligibleBeneficiaries lists every participant against the next slot.
func (s *Service) EligibleBeneficiaries(ctx context.Context, tontineID uuid.UUID) (*dto.EligibilityResponse, error) {
	if _, err := repository.FindTontine(ctx, s.DB, tontineID); err != nil {
		return nil, err
	}
	parts, err := repository.ListParticipants(ctx, s.DB, tontineID)
	if err != nil {
		return nil, err
	}
	tours, err := loadTours(ctx, s.DB, tontineID)
	if err != nil {
		return nil, err
	}
	rot := PlanRotation(parts, tours)

	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.ParticipationMemberID)
	}
	names := map[uuid.UUID]string{}
	paid := map[uuid.UUID]decimal.Decimal{}
	if len(ids) > 0 {
		var members []memberModel.MemberModel
		if err := s.DB.WithContext(ctx).Where("member_id IN ?", ids).Find(&members).Error; err != nil {
			return nil, apperror.FromDB(err)
		}
		for _, m := range members {
			names[m.MemberID] = m.MemberFullName
		}
		var contribs []contributionModel.ContributionModel
		if err := s.DB.WithContext(ctx).
			Where("contribution_tontine_id = ? AND contribution_member_id IN ?", tontineID, ids).
			Find(&contribs).Error; err != nil {
			return nil, apperror.FromDB(err)
		}
		for _, c := range contribs {
			paid[c.ContributionMemberID] = paid[c.ContributionMemberID].Add(c.ContributionAmount)
		}
	}
	received := map[uuid.UUID]int{}
	for _, t := range tours {
		received[t.TourBeneficiaryID]++
	}

	out := &dto.EligibilityResponse{
		NextNumber:    rot.Number,
		Cycle:         rot.Cycle,
		Position:      rot.Position,
		Beneficiaries: make([]dto.EligibleBeneficiary, 0, len(parts)),
	}
	for _, p := range parts {
		row := dto.EligibleBeneficiary{
			MemberID:         p.ParticipationMemberID,
			MemberFullName:   names[p.ParticipationMemberID],
			NbParts:          p.ParticipationNbParts,
			ToursReceived:    received[p.ParticipationMemberID],
			TotalContributed: paid[p.ParticipationMemberID],
			Eligible:         true,
		}
		if err := rot.Check(p.ParticipationMemberID); err != nil {
			row.Eligible = false
			var ae *apperror.Error
			if errors.As(err, &ae) {
				row.Reason = ae.Message
			}
		}
		out.Beneficiaries = append(out.Beneficiaries, row)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.TourModel, error) {
	var t model.TourModel
	if err := s.DB.WithContext(ctx).Where("tour_id = ?", id).Take(&t).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrTourNotFound)
	}
	return &t, nil
}

func (s *Service) List(ctx context.Context, q dto.ListToursQuery) ([]model.TourModel, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.TourModel{})
	if q.TontineID != nil {
		db = db.Where("tour_tontine_id = ?", *q.TontineID)
	}
	if q.BeneficiaryID != nil {
		db = db.Where("tour_beneficiary_id = ?", *q.BeneficiaryID)
	}
	if q.SessionID != nil {
		db = db.Where("tour_session_id = ?", *q.SessionID)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.TourModel
	db = db.Order("tour_distributed_at DESC").Order("tour_number DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}
