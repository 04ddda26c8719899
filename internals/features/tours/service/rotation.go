package service

import (
	"time"

	"github.com/google/uuid"

	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/features/tours/model"
	"njangitech_backend/internals/helpers/apperror"
)

// Rotation describes the next payout slot of a tontine. A cycle gives one
// payout to every member who was participating when the cycle opened.
type Rotation struct {
	Number   int
	Cycle    int
	Position int

	// CycleStart is nil when the next tour opens a new cycle.
	CycleStart *time.Time

	Members map[uuid.UUID]bool
	Served  map[uuid.UUID]bool
}

// PlanRotation derives the next slot from the active participants and
// every tour already distributed, ordered by number.
func PlanRotation(parts []tontineModel.ParticipationModel, tours []model.TourModel) Rotation {
	r := Rotation{
		Number:   1,
		Cycle:    1,
		Position: 1,
		Members:  make(map[uuid.UUID]bool, len(parts)),
		Served:   map[uuid.UUID]bool{},
	}
	if len(tours) == 0 {
		for _, p := range parts {
			r.Members[p.ParticipationMemberID] = true
		}
		return r
	}

	last := tours[len(tours)-1]
	start := last.TourDistributedAt
	var current []model.TourModel
	for _, t := range tours {
		if t.TourCycle != last.TourCycle {
			continue
		}
		if t.TourCyclePosition == 1 {
			start = t.TourDistributedAt
		}
		current = append(current, t)
	}

	rotation := 0
	for _, p := range parts {
		if !p.ParticipationJoinedAt.After(start) {
			rotation++
		}
	}

	r.Number = last.TourNumber + 1
	if last.TourCyclePosition >= rotation {
		r.Cycle = last.TourCycle + 1
		for _, p := range parts {
			r.Members[p.ParticipationMemberID] = true
		}
		return r
	}

	r.Cycle = last.TourCycle
	r.Position = last.TourCyclePosition + 1
	r.CycleStart = &start
	for _, p := range parts {
		if !p.ParticipationJoinedAt.After(start) {
			r.Members[p.ParticipationMemberID] = true
		}
	}
	for _, t := range current {
		r.Served[t.TourBeneficiaryID] = true
	}
	return r
}

// Check reports why a member cannot take the next slot.
func (r Rotation) Check(memberID uuid.UUID) error {
	if !r.Members[memberID] {
		return apperror.Validation("member can only join at the start of a new cycle")
	}
	if r.Served[memberID] {
		return apperror.Validation("member already received a tour in cycle %d", r.Cycle)
	}
	return nil
}
