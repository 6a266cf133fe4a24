// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/application/adapter"
	"github.com/ledgerlink/backend/internal/domain/entity"
	"github.com/ledgerlink/backend/internal/domain/matching"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// PreviewMatchesInput represents the input for previewing transfer matches.
type PreviewMatchesInput struct {
	Range DateRangeInput
}

// PreviewMatchesOutput represents the matches the engine would accept plus
// the records left unmatched. Nothing is persisted.
type PreviewMatchesOutput struct {
	Matches   []MatchOutput
	Unmatched []*entity.Transaction
}

// PreviewMatchesUseCase runs the matching pipeline read-only.
type PreviewMatchesUseCase struct {
	transferRepo adapter.TransferRepository
	config       valueobject.MatchingConfig
}

// NewPreviewMatchesUseCase creates a new PreviewMatchesUseCase instance.
func NewPreviewMatchesUseCase(transferRepo adapter.TransferRepository, config valueobject.MatchingConfig) *PreviewMatchesUseCase {
	return &PreviewMatchesUseCase{
		transferRepo: transferRepo,
		config:       config,
	}
}

// Execute finds the conflict-free match set for the requested range.
func (uc *PreviewMatchesUseCase) Execute(ctx context.Context, input PreviewMatchesInput) (*PreviewMatchesOutput, error) {
	engine, err := matching.NewEngine(uc.config)
	if err != nil {
		return nil, err
	}

	records, err := uc.transferRepo.ListEligible(ctx, input.Range.StartDate, input.Range.EndDate)
	if err != nil {
		return nil, err
	}

	result := engine.FindMatches(records)

	byID := make(map[uuid.UUID]*entity.Transaction, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	matches := make([]MatchOutput, len(result.Matches))
	for i, m := range result.Matches {
		matches[i] = toMatchOutput(m)
	}

	unmatched := make([]*entity.Transaction, 0, len(result.Unmatched))
	for _, id := range result.Unmatched {
		if tx, ok := byID[id]; ok {
			unmatched = append(unmatched, tx)
		}
	}

	return &PreviewMatchesOutput{
		Matches:   matches,
		Unmatched: unmatched,
	}, nil
}
