// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/application/adapter"
	"github.com/ledgerlink/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	Date            time.Time
	Description     string
	Amount          decimal.Decimal
	Notes           string
	ReimbursementID *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves transactions matching the filter.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	result, err := uc.transactionRepo.List(ctx, adapter.ListTransactionsFilter{
		AccountID: input.AccountID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]*TransactionOutput, len(result.Transactions))
	for i, tx := range result.Transactions {
		transactions[i] = toTransactionOutput(tx)
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// toTransactionOutput converts a transaction entity to the output shape.
func toTransactionOutput(tx *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		Date:            tx.Date,
		Description:     tx.Description,
		Amount:          tx.Amount,
		Notes:           tx.Notes,
		ReimbursementID: tx.ReimbursementID,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}
