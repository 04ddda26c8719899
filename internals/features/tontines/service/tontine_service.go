package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	memberModel "njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/features/tontines/dto"
	"njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
)

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, req dto.CreateTontineRequest) (*model.TontineModel, error) {
	if !req.TontineContributionAmount.IsPositive() {
		return nil, apperror.Validation("contribution amount must be greater than zero")
	}
	t := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	logger.InfoCtx(ctx, "tontine created",
		zap.String("tontine_id", t.TontineID.String()),
		zap.String("type", t.TontineType),
		zap.String("amount", t.TontineContributionAmount.String()),
	)
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.TontineModel, error) {
	return repository.FindTontine(ctx, s.DB, id)
}

func (s *Service) List(ctx context.Context, status string, offset, limit int) ([]model.TontineModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.TontineModel{})
	if status != "" {
		q = q.Where("tontine_status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.TontineModel
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("tontine_created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.TontineModel, error) {
	if !model.IsValidTontineStatus(status) {
		return nil, apperror.Validation("unknown tontine status %q", status)
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(t).Update("tontine_status", status).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	t.TontineStatus = status
	return t, nil
}

// RegisterMember adds a member to a tontine. Presence tontines always use
// one share; optional tontines need at least one.
func (s *Service) RegisterMember(ctx context.Context, tontineID uuid.UUID, req dto.RegisterMemberRequest) (*model.ParticipationModel, error) {
	var out *model.ParticipationModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := repository.LockTontine(ctx, tx, tontineID)
		if err != nil {
			return err
		}
		if !t.IsActive() {
			return apperror.Validation("tontine is %s, registrations are closed", t.TontineStatus)
		}

		var m memberModel.MemberModel
		if err := tx.Where("member_id = ?", req.MemberID).Take(&m).Error; err != nil {
			return apperror.NotFoundOr(err, apperror.ErrMemberNotFound)
		}
		if !m.IsActive() {
			return apperror.Validation("member is %s and cannot join a tontine", m.MemberStatus)
		}

		var n int64
		if err := tx.Model(&model.ParticipationModel{}).
			Where("participation_tontine_id = ? AND participation_member_id = ?", tontineID, req.MemberID).
			Count(&n).Error; err != nil {
			return apperror.FromDB(err)
		}
		if n > 0 {
			return apperror.Conflict("member is already registered in this tontine")
		}

		nbParts := req.NbParts
		if t.IsPresence() {
			nbParts = 1
		} else if nbParts < 1 {
			return apperror.Validation("nb_parts must be at least 1 for an optional tontine")
		}

		p := &model.ParticipationModel{
			ParticipationTontineID: tontineID,
			ParticipationMemberID:  req.MemberID,
			ParticipationNbParts:   nbParts,
			ParticipationActive:    true,
			ParticipationJoinedAt:  s.Now(),
		}
		if err := tx.Create(p).Error; err != nil {
			return apperror.FromDB(err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "member registered in tontine",
		zap.String("tontine_id", tontineID.String()),
		zap.String("member_id", req.MemberID.String()),
		zap.Int("nb_parts", out.ParticipationNbParts),
	)
	return out, nil
}

func (s *Service) Participants(ctx context.Context, tontineID uuid.UUID) ([]dto.ParticipantResponse, error) {
	t, err := s.Get(ctx, tontineID)
	if err != nil {
		return nil, err
	}
	parts, err := repository.ListParticipants(ctx, s.DB, tontineID)
	if err != nil {
		return nil, err
	}
	members, err := s.membersByID(ctx, parts)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ParticipantResponse, 0, len(parts))
	for i := range parts {
		p := &parts[i]
		m := members[p.ParticipationMemberID]
		out = append(out, dto.ParticipantResponse{
			ParticipationID: p.ParticipationID,
			MemberID:        p.ParticipationMemberID,
			MemberFullName:  m.MemberFullName,
			MemberStatus:    m.MemberStatus,
			NbParts:         p.ParticipationNbParts,
			ExpectedAmount:  p.ExpectedAmount(t.TontineContributionAmount),
			JoinedAt:        p.ParticipationJoinedAt,
		})
	}
	return out, nil
}

func (s *Service) membersByID(ctx context.Context, parts []model.ParticipationModel) (map[uuid.UUID]memberModel.MemberModel, error) {
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.ParticipationMemberID)
	}
	out := make(map[uuid.UUID]memberModel.MemberModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []memberModel.MemberModel
	if err := s.DB.WithContext(ctx).Where("member_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	for _, m := range rows {
		out[m.MemberID] = m
	}
	return out, nil
}

// MemberTontines lists the tontines a member is registered in.
func (s *Service) MemberTontines(ctx context.Context, memberID uuid.UUID) ([]dto.MemberTontineResponse, error) {
	var parts []model.ParticipationModel
	if err := s.DB.WithContext(ctx).
		Where("participation_member_id = ?", memberID).
		Order("participation_joined_at ASC").
		Find(&parts).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	if len(parts) == 0 {
		return []dto.MemberTontineResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.ParticipationTontineID)
	}
	var tontines []model.TontineModel
	if err := s.DB.WithContext(ctx).Where("tontine_id IN ?", ids).Find(&tontines).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	byID := make(map[uuid.UUID]model.TontineModel, len(tontines))
	for _, t := range tontines {
		byID[t.TontineID] = t
	}

	out := make([]dto.MemberTontineResponse, 0, len(parts))
	for i := range parts {
		p := &parts[i]
		t := byID[p.ParticipationTontineID]
		out = append(out, dto.MemberTontineResponse{
			TontineID:      t.TontineID,
			TontineName:    t.TontineName,
			TontineType:    t.TontineType,
			TontineStatus:  t.TontineStatus,
			NbParts:        p.ParticipationNbParts,
			ExpectedAmount: p.ExpectedAmount(t.TontineContributionAmount),
			JoinedAt:       p.ParticipationJoinedAt,
		})
	}
	return out, nil
}
