package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	contributionModel "njangitech_backend/internals/features/contributions/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	"njangitech_backend/internals/features/sessions/dto"
	"njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
	"njangitech_backend/internals/helpers/metrics"
)

// CloseSession finalises a session: absent members are fined and the
// session totals are frozen. It writes no ledger entry; cash arrives in
// the ledger when contributions and penalties are collected.
func (s *Service) CloseSession(ctx context.Context, sessionID uuid.UUID) (*dto.CloseSessionResponse, error) {
	var out *dto.CloseSessionResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, t, err := lockWithTontine(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		next, ok := model.NextSessionStatus(sess.SessionStatus, model.SessionEventClose)
		if !ok {
			return apperror.InvalidTransition("session", sess.SessionStatus, "close")
		}

		absent, present, err := s.absentees(ctx, tx, sess, t)
		if err != nil {
			return err
		}

		created := make([]penaltyModel.PenaltyModel, 0, len(absent))
		if s.finesAbsence(t) && s.Rules.Absence.PenaltyAmount.IsPositive() {
			for _, memberID := range absent {
				p := penaltyModel.PenaltyModel{
					PenaltyMemberID:   memberID,
					PenaltySessionID:  &sess.SessionID,
					PenaltyTontineID:  &t.TontineID,
					PenaltyAmount:     s.Rules.Absence.PenaltyAmount,
					PenaltyAmountPaid: decimal.Zero,
					PenaltyReason:     penaltyModel.PenaltyReasonAbsence,
					PenaltyType:       penaltyModel.PenaltyTypeAbsence,
					PenaltyStatus:     penaltyModel.PenaltyStatusUnpaid,
				}
				if err := tx.Create(&p).Error; err != nil {
					return apperror.FromDB(err)
				}
				created = append(created, p)
			}
		}

		totalContrib, err := sumColumn(tx, &contributionModel.ContributionModel{}, "contribution_amount", "contribution_session_id = ?", sess.SessionID)
		if err != nil {
			return err
		}
		totalPen, err := sumColumn(tx, &penaltyModel.PenaltyModel{}, "penalty_amount", "penalty_session_id = ?", sess.SessionID)
		if err != nil {
			return err
		}

		now := s.Now()
		summary := datatypes.JSONMap{
			"present_count":       present,
			"absent_count":        len(absent),
			"penalties_created":   len(created),
			"total_contributions": totalContrib.StringFixed(2),
			"total_penalties":     totalPen.StringFixed(2),
		}
		if err := tx.Model(sess).Updates(map[string]any{
			"session_status":              next,
			"session_total_contributions": totalContrib,
			"session_total_penalties":     totalPen,
			"session_attendance_count":    present,
			"session_close_summary":       summary,
			"session_closed_at":           now,
		}).Error; err != nil {
			return apperror.FromDB(err)
		}
		sess.SessionStatus = next
		sess.SessionTotalContributions = totalContrib
		sess.SessionTotalPenalties = totalPen
		sess.SessionAttendanceCount = present
		sess.SessionCloseSummary = summary
		sess.SessionClosedAt = &now

		out = &dto.CloseSessionResponse{
			Session:            sess,
			TotalContributions: totalContrib,
			TotalPenalties:     totalPen,
			PenaltiesCreated:   created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsClosed.Inc()
	if n := len(out.PenaltiesCreated); n > 0 {
		metrics.PenaltiesCreated.WithLabelValues(penaltyModel.PenaltyTypeAbsence).Add(float64(n))
	}
	logger.InfoCtx(ctx, "session closed",
		zap.String("session_id", sessionID.String()),
		zap.String("total_contributions", out.TotalContributions.String()),
		zap.Int("absence_penalties", len(out.PenaltiesCreated)),
	)
	return out, nil
}

func (s *Service) finesAbsence(t *tontineModel.TontineModel) bool {
	return t.IsPresence() || s.Rules.Absence.PenalizeOptional
}

// absentees returns members recorded as absent plus active participants
// with no attendance line, and the number of members present.
func (s *Service) absentees(ctx context.Context, tx *gorm.DB, sess *model.SessionModel, t *tontineModel.TontineModel) ([]uuid.UUID, int, error) {
	var atts []model.AttendanceModel
	if err := tx.Where("attendance_session_id = ?", sess.SessionID).Find(&atts).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	parts, err := repository.ListParticipants(ctx, tx, t.TontineID)
	if err != nil {
		return nil, 0, err
	}

	recorded := make(map[uuid.UUID]bool, len(atts))
	var absent []uuid.UUID
	present := 0
	for _, a := range atts {
		recorded[a.AttendanceMemberID] = true
		if a.AttendancePresent {
			present++
		} else {
			absent = append(absent, a.AttendanceMemberID)
		}
	}
	for _, p := range parts {
		if !recorded[p.ParticipationMemberID] {
			absent = append(absent, p.ParticipationMemberID)
		}
	}
	return absent, present, nil
}

func sumColumn(tx *gorm.DB, m any, column, where string, args ...any) (decimal.Decimal, error) {
	var vals []decimal.NullDecimal
	if err := tx.Model(m).Where(where, args...).Pluck(column, &vals).Error; err != nil {
		return decimal.Zero, apperror.FromDB(err)
	}
	total := decimal.Zero
	for _, v := range vals {
		if v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	return total, nil
}
