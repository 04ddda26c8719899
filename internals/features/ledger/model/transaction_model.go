package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	TransactionTypeContribution     = "contribution"
	TransactionTypeCreditGranted    = "credit_granted"
	TransactionTypeCreditRepayment  = "credit_repayment"
	TransactionTypePenalty          = "penalty"
	TransactionTypeTourDistribution = "tour_distribution"
	TransactionTypeProjectExpense   = "project_expense"
	TransactionTypeInitialFunding   = "initial_funding"
	TransactionTypeAdjustment       = "adjustment"
)

// TransactionModel is a ledger entry. Amount is signed: positive is an
// inflow, negative an outflow. Rows are never updated or deleted.
type TransactionModel struct {
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid;primaryKey" json:"transaction_id"`

	TransactionTontineID uuid.UUID       `gorm:"column:transaction_tontine_id;type:uuid;not null;index:idx_transactions_tontine_created,priority:1" json:"transaction_tontine_id"`
	TransactionType      string          `gorm:"column:transaction_type;type:varchar(30);not null;index" json:"transaction_type"`
	TransactionAmount    decimal.Decimal `gorm:"column:transaction_amount;type:numeric(14,2);not null" json:"transaction_amount"`

	TransactionDescription   string     `gorm:"column:transaction_description;type:text;not null" json:"transaction_description"`
	TransactionReferenceID   *uuid.UUID `gorm:"column:transaction_reference_id;type:uuid" json:"transaction_reference_id,omitempty"`
	TransactionReferenceType *string    `gorm:"column:transaction_reference_type;type:varchar(30)" json:"transaction_reference_type,omitempty"`
	TransactionMemberID      *uuid.UUID `gorm:"column:transaction_member_id;type:uuid;index" json:"transaction_member_id,omitempty"`

	TransactionMetadata datatypes.JSONMap `gorm:"column:transaction_metadata" json:"transaction_metadata,omitempty"`

	TransactionCreatedAt time.Time `gorm:"column:transaction_created_at;not null;index:idx_transactions_tontine_created,priority:2" json:"transaction_created_at"`
}

func (TransactionModel) TableName() string { return "transactions" }

func IsValidTransactionType(s string) bool {
	switch s {
	case TransactionTypeContribution, TransactionTypeCreditGranted, TransactionTypeCreditRepayment,
		TransactionTypePenalty, TransactionTypeTourDistribution, TransactionTypeProjectExpense,
		TransactionTypeInitialFunding, TransactionTypeAdjustment:
		return true
	}
	return false
}
