// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledgerlink/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes       string          `gorm:"type:text"`

	// ReimbursementID references the counterpart leg of a reconciled transfer.
	ReimbursementID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Account       *AccountModel     `gorm:"foreignKey:AccountID;references:ID"`
	Reimbursement *TransactionModel `gorm:"foreignKey:ReimbursementID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Date:            m.Date,
		Description:     m.Description,
		Amount:          m.Amount,
		Notes:           m.Notes,
		ReimbursementID: m.ReimbursementID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:              transaction.ID,
		AccountID:       transaction.AccountID,
		Date:            transaction.Date,
		Description:     transaction.Description,
		Amount:          transaction.Amount,
		Notes:           transaction.Notes,
		ReimbursementID: transaction.ReimbursementID,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}
