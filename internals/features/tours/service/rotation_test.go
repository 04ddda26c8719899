package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/features/tours/model"
	"njangitech_backend/internals/helpers/apperror"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func part(id uuid.UUID, joined time.Time) tontineModel.ParticipationModel {
	return tontineModel.ParticipationModel{ParticipationMemberID: id, ParticipationNbParts: 1, ParticipationJoinedAt: joined}
}

func tour(n, cycle, pos int, who uuid.UUID, at time.Time) model.TourModel {
	return model.TourModel{TourNumber: n, TourCycle: cycle, TourCyclePosition: pos, TourBeneficiaryID: who, TourDistributedAt: at}
}

func TestPlanRotationFirstTour(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r := PlanRotation([]tontineModel.ParticipationModel{part(a, t0), part(b, t0)}, nil)
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, 1, r.Cycle)
	assert.Equal(t, 1, r.Position)
	assert.Nil(t, r.CycleStart)
	assert.NoError(t, r.Check(a))
	assert.NoError(t, r.Check(b))
}

func TestPlanRotationMidCycle(t *testing.T) {
	a, b, c, late := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	parts := []tontineModel.ParticipationModel{
		part(a, t0), part(b, t0), part(c, t0),
		part(late, t0.Add(48*time.Hour)),
	}
	tours := []model.TourModel{tour(1, 1, 1, a, t0.Add(24*time.Hour))}

	r := PlanRotation(parts, tours)
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, 1, r.Cycle)
	assert.Equal(t, 2, r.Position)
	if assert.NotNil(t, r.CycleStart) {
		assert.True(t, r.CycleStart.Equal(t0.Add(24*time.Hour)))
	}

	assert.True(t, errors.Is(r.Check(a), apperror.ErrValidation))
	assert.NoError(t, r.Check(b))
	err := r.Check(late)
	var ae *apperror.Error
	if assert.True(t, errors.As(err, &ae)) {
		assert.Contains(t, ae.Message, "start of a new cycle")
	}
}

func TestPlanRotationWrapsToNewCycle(t *testing.T) {
	a, b, late := uuid.New(), uuid.New(), uuid.New()
	parts := []tontineModel.ParticipationModel{
		part(a, t0), part(b, t0),
		part(late, t0.Add(36*time.Hour)),
	}
	tours := []model.TourModel{
		tour(1, 1, 1, a, t0.Add(24*time.Hour)),
		tour(2, 1, 2, b, t0.Add(72*time.Hour)),
	}

	r := PlanRotation(parts, tours)
	assert.Equal(t, 3, r.Number)
	assert.Equal(t, 2, r.Cycle)
	assert.Equal(t, 1, r.Position)
	assert.Nil(t, r.CycleStart)
	assert.NoError(t, r.Check(late))
	assert.NoError(t, r.Check(a))
}

func TestPlanRotationNumberMatchesModulo(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	var parts []tontineModel.ParticipationModel
	for _, id := range ids {
		parts = append(parts, part(id, t0))
	}
	var tours []model.TourModel
	for d := 0; d < 7; d++ {
		r := PlanRotation(parts, tours)
		assert.Equal(t, d%len(ids)+1, r.Position, "after %d tours", d)
		assert.Equal(t, d+1, r.Number)
		tours = append(tours, tour(r.Number, r.Cycle, r.Position, ids[d%len(ids)], t0.Add(time.Duration(d+1)*time.Hour)))
	}
}
