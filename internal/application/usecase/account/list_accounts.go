// Package account contains account-related use cases.
package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/application/adapter"
	"github.com/ledgerlink/backend/internal/domain/entity"
)

// AccountOutput represents a single account in the output.
type AccountOutput struct {
	ID          uuid.UUID
	Name        string
	Institution string
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*AccountOutput
}

// ListAccountsUseCase handles listing accounts.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
	}
}

// Execute retrieves all accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	outputs := make([]*AccountOutput, len(accounts))
	for i, account := range accounts {
		outputs[i] = toAccountOutput(account)
	}

	return &ListAccountsOutput{Accounts: outputs}, nil
}

// toAccountOutput converts an account entity to the output shape.
func toAccountOutput(account *entity.Account) *AccountOutput {
	return &AccountOutput{
		ID:          account.ID,
		Name:        account.Name,
		Institution: account.Institution,
		Currency:    account.Currency,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}
