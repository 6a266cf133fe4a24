// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ledgerlink/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequestDTO represents the request for POST /transactions.
type CreateTransactionRequestDTO struct {
	AccountID   string `json:"account_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Notes       string `json:"notes"`
}

// TransactionResponseDTO represents a single transaction in API responses.
type TransactionResponseDTO struct {
	ID              string  `json:"id"`
	AccountID       string  `json:"account_id"`
	Date            string  `json:"date"`
	Description     string  `json:"description"`
	Amount          string  `json:"amount"`
	Notes           string  `json:"notes,omitempty"`
	ReimbursementID *string `json:"reimbursement_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// PaginationDTO represents pagination information in list responses.
type PaginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListTransactionsResponseDTO represents the response for GET /transactions.
type ListTransactionsResponseDTO struct {
	Transactions []TransactionResponseDTO `json:"transactions"`
	Pagination   PaginationDTO            `json:"pagination"`
}

// ToTransactionResponseDTO converts a use case transaction output to its DTO.
func ToTransactionResponseDTO(tx *transaction.TransactionOutput) TransactionResponseDTO {
	dto := TransactionResponseDTO{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Date:        tx.Date.Format("2006-01-02"),
		Description: tx.Description,
		Amount:      tx.Amount.String(),
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   tx.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if tx.ReimbursementID != nil {
		linked := tx.ReimbursementID.String()
		dto.ReimbursementID = &linked
	}
	return dto
}
