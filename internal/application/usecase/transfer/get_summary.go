// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"context"

	"github.com/ledgerlink/backend/internal/application/adapter"
)

// GetSummaryOutput contains link statistics for the ledger.
type GetSummaryOutput struct {
	LinkedPairs   int
	Unlinked      int
	TotalEligible int
}

// GetSummaryUseCase retrieves reconciliation statistics.
type GetSummaryUseCase struct {
	transferRepo adapter.TransferRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transferRepo adapter.TransferRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transferRepo: transferRepo,
	}
}

// Execute retrieves the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*GetSummaryOutput, error) {
	summary, err := uc.transferRepo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		LinkedPairs:   summary.LinkedPairs,
		Unlinked:      summary.Unlinked,
		TotalEligible: summary.TotalEligible,
	}, nil
}
