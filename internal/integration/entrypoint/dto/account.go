// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ledgerlink/backend/internal/application/usecase/account"
)

// CreateAccountRequestDTO represents the request for POST /accounts.
type CreateAccountRequestDTO struct {
	Name        string `json:"name" binding:"required"`
	Institution string `json:"institution"`
	Currency    string `json:"currency"`
}

// AccountResponseDTO represents a single account in API responses.
type AccountResponseDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Currency    string `json:"currency"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListAccountsResponseDTO represents the response for GET /accounts.
type ListAccountsResponseDTO struct {
	Accounts []AccountResponseDTO `json:"accounts"`
}

// ToAccountResponseDTO converts a use case account output to its DTO.
func ToAccountResponseDTO(a *account.AccountOutput) AccountResponseDTO {
	return AccountResponseDTO{
		ID:          a.ID.String(),
		Name:        a.Name,
		Institution: a.Institution,
		Currency:    a.Currency,
		CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   a.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
