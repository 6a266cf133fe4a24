// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction in the LedgerLink system.
// Amount is signed: negative for money leaving the account, positive for
// money entering it.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Notes       string

	// ReimbursementID links this transaction to its counterpart leg when the
	// two records represent the same transfer between accounts. A non-nil
	// value means the record is claimed and excluded from automatic matching.
	ReimbursementID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsLinked reports whether the transaction is already claimed as one leg of a
// reconciled transfer.
func (t *Transaction) IsLinked() bool {
	return t.ReimbursementID != nil
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
