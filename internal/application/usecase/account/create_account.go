// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgerlink/backend/internal/application/adapter"
	"github.com/ledgerlink/backend/internal/domain/entity"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	Name        string
	Institution string
	Currency    string
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *AccountOutput
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAccountNameRequired,
			"account name is required",
			domainerror.ErrAccountNameRequired,
		)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	account := entity.NewAccount(name, input.Institution, currency)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{
		Account: toAccountOutput(account),
	}, nil
}
