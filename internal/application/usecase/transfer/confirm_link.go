// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/application/adapter"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/domain/entity"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// ConfirmLinkInput represents a human-confirmed suggestion to link two legs.
type ConfirmLinkInput struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
	Force    bool // Allow linking outside the review tolerance
}

// ConfirmLinkOutput represents the result of confirming a link.
type ConfirmLinkOutput struct {
	SourceID         uuid.UUID
	TargetID         uuid.UUID
	AmountDifference decimal.Decimal
	HasMismatch      bool
	MatchType        valueobject.MatchType
}

// ConfirmLinkUseCase writes the link for a manually reviewed pair. The
// opposite-sign and cross-account constraints hold here exactly as in
// automatic mode; only the amount tolerance can be overridden with Force.
type ConfirmLinkUseCase struct {
	transferRepo adapter.TransferRepository
	config       valueobject.MatchingConfig
}

// NewConfirmLinkUseCase creates a new ConfirmLinkUseCase instance.
func NewConfirmLinkUseCase(transferRepo adapter.TransferRepository, config valueobject.MatchingConfig) *ConfirmLinkUseCase {
	return &ConfirmLinkUseCase{
		transferRepo: transferRepo,
		config:       config,
	}
}

// Execute validates and persists the confirmed link.
func (uc *ConfirmLinkUseCase) Execute(ctx context.Context, input ConfirmLinkInput) (*ConfirmLinkOutput, error) {
	records, err := uc.transferRepo.GetByIDs(ctx, []uuid.UUID{input.SourceID, input.TargetID})
	if err != nil {
		return nil, err
	}

	var source, target *entity.Transaction
	for _, r := range records {
		switch r.ID {
		case input.SourceID:
			source = r
		case input.TargetID:
			target = r
		}
	}
	if source == nil || target == nil || input.SourceID == input.TargetID {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeTransferLegNotFound,
			"both transfer legs must exist",
			domainerror.ErrTransferLegNotFound,
		)
	}

	if source.IsLinked() || target.IsLinked() {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeAlreadyLinked,
			"one of the legs is already linked to another transfer",
			domainerror.ErrAlreadyLinked,
		)
	}

	if source.AccountID == target.AccountID {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeSameAccount,
			"transfer legs must belong to different accounts",
			domainerror.ErrSameAccount,
		)
	}

	if source.Amount.IsPositive() == target.Amount.IsPositive() {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeSameSign,
			"transfer legs must have opposite cash-flow direction",
			domainerror.ErrSameSign,
		)
	}

	amountDiff := source.Amount.Abs().Sub(target.Amount.Abs()).Abs()
	avgAbs := source.Amount.Abs().Add(target.Amount.Abs()).Div(decimal.NewFromInt(2))
	hasMismatch := amountDiff.Div(avgAbs).GreaterThan(uc.config.ReviewTolerancePercentage)
	if hasMismatch && !input.Force {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeAmountOutsideTolerance,
			"amount difference exceeds tolerance, use force to override",
			domainerror.ErrAmountOutsideTolerance,
		)
	}

	if err := uc.transferRepo.LinkPair(ctx, input.SourceID, input.TargetID); err != nil {
		return nil, err
	}

	return &ConfirmLinkOutput{
		SourceID:         input.SourceID,
		TargetID:         input.TargetID,
		AmountDifference: amountDiff,
		HasMismatch:      hasMismatch,
		MatchType:        valueobject.MatchTypeManual,
	}, nil
}
