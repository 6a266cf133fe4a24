// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/domain/entity"
)

// ListTransactionsFilter holds the filtering and paging options for listing
// transactions.
type ListTransactionsFilter struct {
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List retrieves transactions matching the filter, newest first.
	List(ctx context.Context, filter ListTransactionsFilter) (*entity.TransactionListResult, error)

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// GetByID retrieves an account by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// List retrieves all accounts, ordered by name.
	List(ctx context.Context) ([]*entity.Account, error)
}
