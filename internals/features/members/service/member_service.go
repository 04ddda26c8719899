package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"njangitech_backend/internals/features/members/dto"
	"njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

func (s *Service) emailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	var n int64
	q := s.DB.WithContext(ctx).Model(&model.MemberModel{}).Where("member_email = ?", email)
	if except != uuid.Nil {
		q = q.Where("member_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, apperror.FromDB(err)
	}
	return n > 0, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateMemberRequest) (*model.MemberModel, error) {
	req.Normalize()
	if req.MemberEmail != nil {
		taken, err := s.emailTaken(ctx, *req.MemberEmail, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Conflict("email %s is already used by another member", *req.MemberEmail)
		}
	}

	m := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	logger.InfoCtx(ctx, "member created", zap.String("member_id", m.MemberID.String()))
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.MemberModel, error) {
	var m model.MemberModel
	if err := s.DB.WithContext(ctx).Where("member_id = ?", id).Take(&m).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrMemberNotFound)
	}
	return &m, nil
}

func (s *Service) List(ctx context.Context, q dto.ListMembersQuery, order string) ([]model.MemberModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&model.MemberModel{})
	if q.Status != "" {
		tx = tx.Where("member_status = ?", q.Status)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("LOWER(member_full_name) LIKE LOWER(?) OR member_email LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.MemberModel
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit).Offset(q.Offset)
	}
	if err := tx.Order(order).Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMemberRequest) (*model.MemberModel, error) {
	req.Normalize()
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.MemberEmail != nil {
		taken, err := s.emailTaken(ctx, *req.MemberEmail, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Conflict("email %s is already used by another member", *req.MemberEmail)
		}
	}
	req.Apply(m)
	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	return m, nil
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.MemberModel, error) {
	if !model.IsValidMemberStatus(status) {
		return nil, apperror.Validation("unknown member status %q", status)
	}
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(m).Update("member_status", status).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	m.MemberStatus = status
	logger.InfoCtx(ctx, "member status changed", zap.String("member_id", id.String()), zap.String("status", status))
	return m, nil
}
