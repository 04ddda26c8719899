package database

import (
	"fmt"

	"gorm.io/gorm"

	contributionModel "njangitech_backend/internals/features/contributions/model"
	creditModel "njangitech_backend/internals/features/credits/model"
	ledgerModel "njangitech_backend/internals/features/ledger/model"
	memberModel "njangitech_backend/internals/features/members/model"
	penaltyModel "njangitech_backend/internals/features/penalties/model"
	projectModel "njangitech_backend/internals/features/projects/model"
	sessionModel "njangitech_backend/internals/features/sessions/model"
	tontineModel "njangitech_backend/internals/features/tontines/model"
	tourModel "njangitech_backend/internals/features/tours/model"
)

// Models lists every table, parents first.
func Models() []any {
	return []any{
		&memberModel.MemberModel{},
		&tontineModel.TontineModel{},
		&tontineModel.ParticipationModel{},
		&sessionModel.SessionModel{},
		&sessionModel.AttendanceModel{},
		&contributionModel.ContributionModel{},
		&creditModel.CreditModel{},
		&penaltyModel.PenaltyModel{},
		&tourModel.TourModel{},
		&projectModel.ProjectModel{},
		&ledgerModel.TransactionModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
