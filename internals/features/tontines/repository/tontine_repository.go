package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/helpers/apperror"
)

func FindTontine(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.TontineModel, error) {
	var t model.TontineModel
	if err := db.WithContext(ctx).Where("tontine_id = ?", id).Take(&t).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrTontineNotFound)
	}
	return &t, nil
}

// LockTontine takes SELECT ... FOR UPDATE on the tontine row. Every
// workflow that checks the balance before moving money holds this lock,
// which serialises them per tontine.
func LockTontine(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.TontineModel, error) {
	var t model.TontineModel
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tontine_id = ?", id).
		Take(&t).Error
	if err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrTontineNotFound)
	}
	return &t, nil
}

// ListParticipants returns active participations ordered by join time.
func ListParticipants(ctx context.Context, db *gorm.DB, tontineID uuid.UUID) ([]model.ParticipationModel, error) {
	var rows []model.ParticipationModel
	err := db.WithContext(ctx).
		Where("participation_tontine_id = ? AND participation_active = ?", tontineID, true).
		Order("participation_joined_at ASC").
		Order("participation_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return rows, nil
}

func FindParticipation(ctx context.Context, db *gorm.DB, tontineID, memberID uuid.UUID) (*model.ParticipationModel, error) {
	var p model.ParticipationModel
	err := db.WithContext(ctx).
		Where("participation_tontine_id = ? AND participation_member_id = ?", tontineID, memberID).
		Take(&p).Error
	if err != nil {
		return nil, apperror.NotFoundOr(err, apperror.Validation("member is not registered in this tontine"))
	}
	return &p, nil
}
