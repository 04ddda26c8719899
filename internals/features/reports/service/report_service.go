package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"njangitech_backend/internals/configs"
	balance "njangitech_backend/internals/features/balance/service"
	contributionModel "njangitech_backend/internals/features/contributions/model"
	creditModel "njangitech_backend/internals/features/credits/model"
	ledger "njangitech_backend/internals/features/ledger/service"
	memberModel "njangitech_backend/internals/features/members/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	projectModel "njangitech_backend/internals/features/projects/model"
	"njangitech_backend/internals/features/reports/dto"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	"njangitech_backend/internals/features/tontines/repository"
	tourModel "njangitech_backend/internals/features/tours/model"
	"njangitech_backend/internals/helpers/apperror"
)

// Service builds read-only views across features. Nothing here writes.
type Service struct {
	DB      *gorm.DB
	Balance *balance.Service
	Ledger  *ledger.Service
	Rules   configs.Rules
}

func New(db *gorm.DB, rules configs.Rules) *Service {
	return &Service{DB: db, Balance: balance.New(db), Ledger: ledger.New(db), Rules: rules}
}

func (s *Service) TontineBalance(ctx context.Context, tontineID uuid.UUID) (*dto.BalanceResponse, error) {
	if _, err := repository.FindTontine(ctx, s.DB, tontineID); err != nil {
		return nil, err
	}
	b, err := s.Balance.Breakdown(ctx, tontineID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		TontineID: tontineID,
		Currency:  s.Rules.Currency,
		Balance:   b.Balance,
		Breakdown: b,
	}, nil
}

func (s *Service) MemberSituation(ctx context.Context, memberID uuid.UUID) (*dto.MemberSituation, error) {
	db := s.DB.WithContext(ctx)
	var m memberModel.MemberModel
	if err := db.Where("member_id = ?", memberID).Take(&m).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrMemberNotFound)
	}
	out := &dto.MemberSituation{
		Member:             &m,
		TotalContributed:   decimal.Zero,
		PenaltiesTotal:     decimal.Zero,
		PenaltiesUnpaid:    decimal.Zero,
		TotalBorrowed:      decimal.Zero,
		OutstandingCredit:  decimal.Zero,
		ToursReceivedTotal: decimal.Zero,
	}

	var contribs []decimal.NullDecimal
	if err := db.Model(&contributionModel.ContributionModel{}).
		Where("contribution_member_id = ?", memberID).
		Pluck("contribution_amount", &contribs).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	for _, c := range contribs {
		if c.Valid {
			out.TotalContributed = out.TotalContributed.Add(c.Decimal)
		}
	}

	var penalties []penaltyModel.PenaltyModel
	if err := db.Where("penalty_member_id = ? AND penalty_status <> ?", memberID, penaltyModel.PenaltyStatusCancelled).
		Find(&penalties).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	for i := range penalties {
		out.PenaltiesTotal = out.PenaltiesTotal.Add(penalties[i].PenaltyAmount)
		out.PenaltiesUnpaid = out.PenaltiesUnpaid.Add(penalties[i].Outstanding())
	}

	var credits []creditModel.CreditModel
	if err := db.Where("credit_member_id = ?", memberID).Order("credit_created_at DESC").Find(&credits).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	outstanding := make(map[string]bool, len(creditModel.OutstandingStatuses))
	for _, st := range creditModel.OutstandingStatuses {
		outstanding[st] = true
	}
	for i := range credits {
		c := &credits[i]
		if outstanding[c.CreditStatus] || c.CreditStatus == creditModel.CreditStatusCompleted {
			out.TotalBorrowed = out.TotalBorrowed.Add(c.CreditAmount)
		}
		if outstanding[c.CreditStatus] {
			out.OutstandingCredit = out.OutstandingCredit.Add(c.Remaining())
			if out.ActiveCredit == nil {
				out.ActiveCredit = c
			}
		}
	}

	var tours []tourModel.TourModel
	if err := db.Where("tour_beneficiary_id = ?", memberID).Find(&tours).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	out.ToursReceived = len(tours)
	for _, t := range tours {
		out.ToursReceivedTotal = out.ToursReceivedTotal.Add(t.TourAmount)
	}

	var n int64
	if err := db.Model(&tontineModel.ParticipationModel{}).
		Where("participation_member_id = ? AND participation_active = ?", memberID, true).
		Count(&n).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	out.TontineCount = int(n)
	return out, nil
}

func (s *Service) SessionReport(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReport, error) {
	db := s.DB.WithContext(ctx)
	var sess sessionModel.SessionModel
	if err := db.Where("session_id = ?", sessionID).Take(&sess).Error; err != nil {
		return nil, apperror.NotFoundOr(err, apperror.ErrSessionNotFound)
	}
	out := &dto.SessionReport{Session: &sess, Absentees: []uuid.UUID{}}

	if err := db.Where("contribution_session_id = ?", sessionID).Find(&out.Contributions).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	if err := db.Where("penalty_session_id = ?", sessionID).Find(&out.Penalties).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	if err := db.Where("tour_session_id = ?", sessionID).Find(&out.Tours).Error; err != nil {
		return nil, apperror.FromDB(err)
	}

	var atts []sessionModel.AttendanceModel
	if err := db.Where("attendance_session_id = ?", sessionID).Find(&atts).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	recorded := make(map[uuid.UUID]bool, len(atts))
	for _, a := range atts {
		recorded[a.AttendanceMemberID] = true
		if !a.AttendancePresent {
			out.Absentees = append(out.Absentees, a.AttendanceMemberID)
		}
	}
	parts, err := repository.ListParticipants(ctx, s.DB, sess.SessionTontineID)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		if !recorded[p.ParticipationMemberID] {
			out.Absentees = append(out.Absentees, p.ParticipationMemberID)
		}
	}
	return out, nil
}

func (s *Service) TontineDashboard(ctx context.Context, tontineID uuid.UUID) (*dto.TontineDashboard, error) {
	t, err := repository.FindTontine(ctx, s.DB, tontineID)
	if err != nil {
		return nil, err
	}
	b, err := s.Balance.Breakdown(ctx, tontineID)
	if err != nil {
		return nil, err
	}
	ledgerTotal, err := s.Ledger.Total(ctx, tontineID)
	if err != nil {
		return nil, err
	}
	parts, err := repository.ListParticipants(ctx, s.DB, tontineID)
	if err != nil {
		return nil, err
	}

	out := &dto.TontineDashboard{
		Tontine:          t,
		Balance:          b,
		LedgerTotal:      ledgerTotal,
		ParticipantCount: len(parts),
		UnpaidPenalties:  decimal.Zero,
	}

	db := s.DB.WithContext(ctx)
	if err := db.Where("credit_tontine_id = ? AND credit_status IN ?", tontineID, creditModel.OutstandingStatuses).
		Order("credit_due_date ASC").Find(&out.ActiveCredits).Error; err != nil {
		return nil, apperror.FromDB(err)
	}

	var penalties []penaltyModel.PenaltyModel
	if err := db.Where("penalty_tontine_id = ? AND penalty_status IN ?", tontineID,
		[]string{penaltyModel.PenaltyStatusUnpaid, penaltyModel.PenaltyStatusPartiallyPaid}).
		Find(&penalties).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	for i := range penalties {
		out.UnpaidPenalties = out.UnpaidPenalties.Add(penalties[i].Outstanding())
	}

	if err := db.Where("project_tontine_id = ? AND project_status NOT IN ?", tontineID,
		[]string{projectModel.ProjectStatusCompleted, projectModel.ProjectStatusCancelled}).
		Find(&out.ActiveProjects).Error; err != nil {
		return nil, apperror.FromDB(err)
	}

	if err := db.Model(&sessionModel.SessionModel{}).
		Where("session_tontine_id = ? AND session_status = ?", tontineID, sessionModel.SessionStatusClosed).
		Count(&out.SessionsClosed).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	return out, nil
}

// AssociationDashboard adds up the balance breakdown of every tontine and
// counts the live records across the association.
func (s *Service) AssociationDashboard(ctx context.Context) (*dto.AssociationDashboard, error) {
	db := s.DB.WithContext(ctx)
	out := &dto.AssociationDashboard{
		CashInHand:           decimal.Zero,
		TotalContributions:   decimal.Zero,
		TotalTours:           decimal.Zero,
		TotalPenaltiesUnpaid: decimal.Zero,
	}

	var ids []uuid.UUID
	if err := db.Model(&tontineModel.TontineModel{}).Pluck("tontine_id", &ids).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	for _, id := range ids {
		b, err := s.Balance.Breakdown(ctx, id)
		if err != nil {
			return nil, err
		}
		out.CashInHand = out.CashInHand.Add(b.Balance)
		out.TotalContributions = out.TotalContributions.Add(b.Contributions)
		out.TotalTours = out.TotalTours.Add(b.ToursDistributed)
	}

	counts := []struct {
		model any
		where string
		args  []any
		dst   *int64
	}{
		{&tontineModel.TontineModel{}, "tontine_status = ?", []any{tontineModel.TontineStatusActive}, &out.ActiveTontines},
		{&memberModel.MemberModel{}, "member_status = ?", []any{memberModel.MemberStatusActive}, &out.ActiveMembers},
		{&creditModel.CreditModel{}, "credit_status IN ?", []any{creditModel.OutstandingStatuses}, &out.ActiveCredits},
		{&projectModel.ProjectModel{}, "project_status NOT IN ?", []any{[]string{projectModel.ProjectStatusCompleted, projectModel.ProjectStatusCancelled}}, &out.ActiveProjects},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.args...).Count(c.dst).Error; err != nil {
			return nil, apperror.FromDB(err)
		}
	}

	var penalties []penaltyModel.PenaltyModel
	if err := db.Where("penalty_status IN ?",
		[]string{penaltyModel.PenaltyStatusUnpaid, penaltyModel.PenaltyStatusPartiallyPaid}).
		Find(&penalties).Error; err != nil {
		return nil, apperror.FromDB(err)
	}
	out.PendingPenalties = int64(len(penalties))
	for i := range penalties {
		out.TotalPenaltiesUnpaid = out.TotalPenaltiesUnpaid.Add(penalties[i].Outstanding())
	}
	return out, nil
}
