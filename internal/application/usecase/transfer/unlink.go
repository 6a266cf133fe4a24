// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/application/adapter"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
)

// UnlinkInput represents the input for clearing a transfer link.
type UnlinkInput struct {
	TransactionID uuid.UUID
}

// UnlinkOutput represents the result of unlinking.
type UnlinkOutput struct {
	TransactionID uuid.UUID
	Success       bool
}

// UnlinkUseCase clears the reimbursement link on a transaction and its
// counterpart, making both eligible for matching again.
type UnlinkUseCase struct {
	transferRepo adapter.TransferRepository
}

// NewUnlinkUseCase creates a new UnlinkUseCase instance.
func NewUnlinkUseCase(transferRepo adapter.TransferRepository) *UnlinkUseCase {
	return &UnlinkUseCase{
		transferRepo: transferRepo,
	}
}

// Execute performs the unlinking operation.
func (uc *UnlinkUseCase) Execute(ctx context.Context, input UnlinkInput) (*UnlinkOutput, error) {
	records, err := uc.transferRepo.GetByIDs(ctx, []uuid.UUID{input.TransactionID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeTransferLegNotFound,
			"transaction not found",
			domainerror.ErrTransferLegNotFound,
		)
	}
	if !records[0].IsLinked() {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeNotLinked,
			"transaction is not linked to any transfer",
			domainerror.ErrNotLinked,
		)
	}

	if err := uc.transferRepo.Unlink(ctx, input.TransactionID); err != nil {
		return nil, err
	}

	return &UnlinkOutput{
		TransactionID: input.TransactionID,
		Success:       true,
	}, nil
}
