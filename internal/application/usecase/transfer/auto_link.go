// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"context"
	"log/slog"

	"github.com/ledgerlink/backend/internal/application/adapter"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/domain/matching"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// AutoLinkInput represents the input for an automatic linking run.
type AutoLinkInput struct {
	Range DateRangeInput
}

// AutoLinkOutput represents the result of an automatic linking run.
type AutoLinkOutput struct {
	Linked         []MatchOutput
	LinkedCount    int
	UnmatchedCount int
}

// AutoLinkUseCase runs the matching pipeline in automatic mode and persists
// the accepted links. Runs over the same ledger are serialized through the
// reconciliation lock so two concurrent callers cannot claim overlapping
// records.
type AutoLinkUseCase struct {
	transferRepo adapter.TransferRepository
	locker       adapter.ReconciliationLocker
	config       valueobject.MatchingConfig
}

// NewAutoLinkUseCase creates a new AutoLinkUseCase instance.
func NewAutoLinkUseCase(
	transferRepo adapter.TransferRepository,
	locker adapter.ReconciliationLocker,
	config valueobject.MatchingConfig,
) *AutoLinkUseCase {
	return &AutoLinkUseCase{
		transferRepo: transferRepo,
		locker:       locker,
		config:       config,
	}
}

// Execute performs the automatic linking run.
func (uc *AutoLinkUseCase) Execute(ctx context.Context, input AutoLinkInput) (*AutoLinkOutput, error) {
	engine, err := matching.NewEngine(uc.config)
	if err != nil {
		return nil, err
	}

	acquired, err := uc.locker.TryLock(ctx)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeReconciliationInFlight,
			"another reconciliation run is in progress",
			domainerror.ErrReconciliationInProgress,
		)
	}
	defer func() {
		if err := uc.locker.Unlock(ctx); err != nil {
			slog.Warn("Failed to release reconciliation lock", "error", err)
		}
	}()

	records, err := uc.transferRepo.ListEligible(ctx, input.Range.StartDate, input.Range.EndDate)
	if err != nil {
		return nil, err
	}

	_, result := engine.AutoMatch(records)

	linked := make([]MatchOutput, 0, len(result.Matches))
	for _, m := range result.Matches {
		if err := uc.transferRepo.LinkPair(ctx, m.SourceID, m.TargetID); err != nil {
			return nil, err
		}
		linked = append(linked, toMatchOutput(m))
	}

	slog.Info("Automatic reconciliation completed",
		"linked_pairs", len(linked),
		"unmatched", len(result.Unmatched),
	)

	return &AutoLinkOutput{
		Linked:         linked,
		LinkedCount:    len(linked),
		UnmatchedCount: len(result.Unmatched),
	}, nil
}
