// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a financial account (checking, savings, credit card)
// owned by the user.
type Account struct {
	ID          uuid.UUID
	Name        string
	Institution string
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewAccount creates a new Account entity.
func NewAccount(name, institution, currency string) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:          uuid.New(),
		Name:        name,
		Institution: institution,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
