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
	contributionModel "njangitech_backend/internals/features/contributions/model"
	memberModel "njangitech_backend/internals/features/members/model"
	"njangitech_backend/internals/features/sessions/dto"
	"njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/features/tontines/repository"
	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
)

type Service struct {
	DB    *gorm.DB
	Rules configs.Rules
	Now   func() time.Time
}

func New(db *gorm.DB, rules configs.Rules) *Service {
	return &Service{DB: db, Rules: rules, Now: func() time.Time { return time.Now().UTC() }}
}

func lockSession(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.SessionModel, error) {
	var s model.SessionModel
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_id = ?", id).
		Take(&s).Error
	if err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrSessionNotFound)
	}
	return &s, nil
}

// lockWithTontine locks the owning tontine, then the session, in the
// order every money workflow uses.
func lockWithTontine(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.SessionModel, *tontineModel.TontineModel, error) {
	var peek model.SessionModel
	if err := tx.WithContext(ctx).Select("session_id", "session_tontine_id").
		Where("session_id = ?", id).Take(&peek).Error; err != nil {
		return nil, nil, apperror.NotFoundOr(err, apperror.ErrSessionNotFound)
	}
	t, err := repository.LockTontine(ctx, tx, peek.SessionTontineID)
	if err != nil {
		return nil, nil, err
	}
	sess, err := lockSession(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	return sess, t, nil
}

// CreateSession schedules the next session of a tontine. Numbers are
// assigned under the tontine lock so they stay unique and increasing.
func (s *Service) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*model.SessionModel, error) {
	var out *model.SessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := repository.LockTontine(ctx, tx, req.SessionTontineID)
		if err != nil {
			return err
		}
		if !t.IsActive() {
			return apperror.Validation("tontine is %s, no new session can be scheduled", t.TontineStatus)
		}

		var last int
		if err := tx.Model(&model.SessionModel{}).
			Where("session_tontine_id = ?", t.TontineID).
			Select("COALESCE(MAX(session_number), 0)").
			Scan(&last).Error; err != nil {
			return apperror.FromDB(err)
		}

		sess := &model.SessionModel{
			SessionTontineID:          t.TontineID,
			SessionNumber:             last + 1,
			SessionDate:               req.SessionDate,
			SessionLocation:           req.SessionLocation,
			SessionStatus:             model.SessionStatusScheduled,
			SessionTotalContributions: decimal.Zero,
			SessionTotalPenalties:     decimal.Zero,
		}
		if err := tx.Create(sess).Error; err != nil {
			return apperror.FromDB(err)
		}
		out = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "session scheduled",
		zap.String("session_id", out.SessionID.String()),
		zap.Int("number", out.SessionNumber),
	)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.SessionModel, error) {
	var sess model.SessionModel
	if err := s.DB.WithContext(ctx).Where("session_id = ?", id).Take(&sess).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrSessionNotFound)
	}
	return &sess, nil
}

func (s *Service) List(ctx context.Context, tontineID *uuid.UUID, status string, offset, limit int, order string) ([]model.SessionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.SessionModel{})
	if tontineID != nil {
		q = q.Where("session_tontine_id = ?", *tontineID)
	}
	if status != "" {
		q = q.Where("session_status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	var rows []model.SessionModel
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order(order).Find(&rows).Error; err != nil {
		return nil, 0, apperror.FromDB(err)
	}
	return rows, total, nil
}

// AttendanceSheet lists every expected member with what was recorded.
func (s *Service) AttendanceSheet(ctx context.Context, sessionID uuid.UUID) ([]dto.AttendanceSheetRow, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	t, err := repository.FindTontine(ctx, s.DB, sess.SessionTontineID)
	if err != nil {
		return nil, err
	}
	parts, err := repository.ListParticipants(ctx, s.DB, t.TontineID)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	var atts []model.AttendanceModel
	if err := db.Where("attendance_session_id = ?", sessionID).Find(&atts).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	var contribs []contributionModel.ContributionModel
	if err := db.Where("contribution_session_id = ?", sessionID).Find(&contribs).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	memberIDs := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		memberIDs = append(memberIDs, p.ParticipationMemberID)
	}
	var members []memberModel.MemberModel
	if len(memberIDs) > 0 {
		if err := db.Where("member_id IN ?", memberIDs).Find(&members).Error; err != nil {
			return nil, apperror.FromDB(err)
		}
	}

	attByMember := make(map[uuid.UUID]model.AttendanceModel, len(atts))
	for _, a := range atts {
		attByMember[a.AttendanceMemberID] = a
	}
	contribByMember := make(map[uuid.UUID]contributionModel.ContributionModel, len(contribs))
	for _, c := range contribs {
		contribByMember[c.ContributionMemberID] = c
	}
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.MemberID] = m.MemberFullName
	}

	out := make([]dto.AttendanceSheetRow, 0, len(parts))
	for i := range parts {
		p := &parts[i]
		row := dto.AttendanceSheetRow{
			MemberID:       p.ParticipationMemberID,
			MemberFullName: names[p.ParticipationMemberID],
			NbParts:        p.ParticipationNbParts,
			ExpectedAmount: p.ExpectedAmount(t.TontineContributionAmount),
			Amount:         decimal.Zero,
		}
		if a, ok := attByMember[p.ParticipationMemberID]; ok {
			row.Recorded = true
			row.Present = a.AttendancePresent
		}
		if c, ok := contribByMember[p.ParticipationMemberID]; ok {
			row.Amount = c.ContributionAmount
			row.ContributionStatus = c.ContributionStatus
		}
		out = append(out, row)
	}
	return out, nil
}

// RecordAttendance records one member's presence and payment.
func (s *Service) RecordAttendance(ctx context.Context, sessionID uuid.UUID, rec dto.AttendanceRecord) error {
	return s.SaveMeeting(ctx, sessionID, []dto.AttendanceRecord{rec})
}

// SaveMeeting records a whole attendance sheet in one transaction. Every
// line is validated before anything is written.
func (s *Service) SaveMeeting(ctx context.Context, sessionID uuid.UUID, records []dto.AttendanceRecord) error {
	if len(records) == 0 {
		return apperror.Validation("no attendance records given")
	}
	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.MemberID]; dup {
			return apperror.Validation("member %s appears twice on the sheet", r.MemberID)
		}
		seen[r.MemberID] = struct{}{}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, t, err := lockWithTontine(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		next, ok := model.NextSessionStatus(sess.SessionStatus, model.SessionEventRecord)
		if !ok {
			return apperror.InvalidTransition("session", sess.SessionStatus, "record attendance")
		}

		parts := make(map[uuid.UUID]*tontineModel.ParticipationModel, len(records))
		for _, r := range records {
			p, err := repository.FindParticipation(ctx, tx, t.TontineID, r.MemberID)
			if err != nil {
				return err
			}
			if err := ValidateContribution(t, p.ParticipationNbParts, r); err != nil {
				return err
			}
			parts[r.MemberID] = p
		}

		now := s.Now()
		for _, r := range records {
			if err := s.writeRecord(tx, sess, t, parts[r.MemberID], r, now); err != nil {
				return err
			}
		}

		if next != sess.SessionStatus {
			if err := tx.Model(sess).Update("session_status", next).Error; err != nil {
				return apperror.FromDB(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "attendance recorded",
		zap.String("session_id", sessionID.String()),
		zap.Int("records", len(records)),
	)
	return nil
}

func (s *Service) writeRecord(tx *gorm.DB, sess *model.SessionModel, t *tontineModel.TontineModel, p *tontineModel.ParticipationModel, r dto.AttendanceRecord, now time.Time) error {
	att := model.AttendanceModel{
		AttendanceSessionID:  sess.SessionID,
		AttendanceMemberID:   r.MemberID,
		AttendancePresent:    r.Present,
		AttendanceRecordedAt: now,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attendance_session_id"}, {Name: "attendance_member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"attendance_present", "attendance_recorded_at"}),
	}).Create(&att).Error; err != nil {
		return apperror.FromDB(err)
	}

	if !r.Present || r.Amount.IsZero() {
		err := tx.Where("contribution_session_id = ? AND contribution_member_id = ?", sess.SessionID, r.MemberID).
			Delete(&contributionModel.ContributionModel{}).Error
		return apperror.FromDB(err)
	}

	expected := p.ExpectedAmount(t.TontineContributionAmount)
	c := contributionModel.ContributionModel{
		ContributionSessionID:      sess.SessionID,
		ContributionMemberID:       r.MemberID,
		ContributionTontineID:      t.TontineID,
		ContributionAmount:         r.Amount,
		ContributionExpectedAmount: expected,
		ContributionStatus:         contributionModel.StatusFor(r.Amount, expected),
		ContributionPaidAt:         &now,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contribution_session_id"}, {Name: "contribution_member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"contribution_amount", "contribution_expected_amount", "contribution_status",
			"contribution_paid_at", "contribution_updated_at",
		}),
	}).Create(&c).Error
	return apperror.FromDB(err)
}

// CancelSession drops a session that has not been closed.
func (s *Service) CancelSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionModel, error) {
	var out *model.SessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		next, ok := model.NextSessionStatus(sess.SessionStatus, model.SessionEventCancel)
		if !ok {
			return apperror.InvalidTransition("session", sess.SessionStatus, "cancel")
		}
		if err := tx.Model(sess).Update("session_status", next).Error; err != nil {
			return apperror.FromDB(err)
		}
		sess.SessionStatus = next
		out = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
