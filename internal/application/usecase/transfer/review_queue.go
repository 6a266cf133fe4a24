// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"context"

	"github.com/ledgerlink/backend/internal/application/adapter"
	"github.com/ledgerlink/backend/internal/domain/matching"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// GetReviewQueueInput represents the input for building the review queue.
type GetReviewQueueInput struct {
	Range DateRangeInput
}

// SuggestionOutput represents one ranked suggestion awaiting human review.
type SuggestionOutput struct {
	Match     MatchOutput
	Reasoning string
}

// GetReviewQueueOutput represents the ranked suggestion list.
type GetReviewQueueOutput struct {
	Suggestions []SuggestionOutput
}

// GetReviewQueueUseCase runs the matching pipeline in review mode: looser
// tolerance, every surviving candidate returned, no persistence.
type GetReviewQueueUseCase struct {
	transferRepo adapter.TransferRepository
	config       valueobject.MatchingConfig
}

// NewGetReviewQueueUseCase creates a new GetReviewQueueUseCase instance.
func NewGetReviewQueueUseCase(transferRepo adapter.TransferRepository, config valueobject.MatchingConfig) *GetReviewQueueUseCase {
	return &GetReviewQueueUseCase{
		transferRepo: transferRepo,
		config:       config,
	}
}

// Execute builds the ranked review queue for the requested range.
func (uc *GetReviewQueueUseCase) Execute(ctx context.Context, input GetReviewQueueInput) (*GetReviewQueueOutput, error) {
	engine, err := matching.NewEngine(uc.config)
	if err != nil {
		return nil, err
	}

	records, err := uc.transferRepo.ListEligible(ctx, input.Range.StartDate, input.Range.EndDate)
	if err != nil {
		return nil, err
	}

	suggestions := engine.FindManualMatches(records)

	outputs := make([]SuggestionOutput, len(suggestions))
	for i, s := range suggestions {
		outputs[i] = SuggestionOutput{
			Match:     toMatchOutput(s.Candidate),
			Reasoning: s.Reasoning,
		}
	}

	return &GetReviewQueueOutput{Suggestions: outputs}, nil
}
