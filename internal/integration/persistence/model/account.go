// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerlink/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(100);not null"`
	Institution string         `gorm:"type:varchar(100)"`
	Currency    string         `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Account{
		ID:          m.ID,
		Name:        m.Name,
		Institution: m.Institution,
		Currency:    m.Currency,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	var deletedAt gorm.DeletedAt
	if account.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *account.DeletedAt, Valid: true}
	}

	return &AccountModel{
		ID:          account.ID,
		Name:        account.Name,
		Institution: account.Institution,
		Currency:    account.Currency,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
