// Package valueobject contains domain value objects for the LedgerLink system.
package valueobject

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/ledgerlink/backend/internal/domain/error"
)

// MatchingConfig contains the configuration for transfer matching.
type MatchingConfig struct {
	// MaxDaysDifference is the matching window: two records further apart
	// than this many whole days are never compared.
	MaxDaysDifference int

	// TolerancePercentage is the maximum relative amount difference for a
	// candidate, expressed as a fraction of the average absolute amount of
	// the pair (0.01 = 1%). The boundary is inclusive.
	TolerancePercentage decimal.Decimal

	// ReviewTolerancePercentage is the looser tolerance used when producing
	// suggestions for human review.
	ReviewTolerancePercentage decimal.Decimal

	// AutoMatchConfidenceFloor is the minimum confidence for automatic
	// linking. Candidates below the floor are left for manual review.
	AutoMatchConfidenceFloor float64

	// Confidence weights. Amount closeness is weighted at least as heavily
	// as date closeness: an amount mismatch is the stronger
	// transfer-vs-coincidence signal.
	AmountWeight float64
	DateWeight   float64
}

// DefaultMatchingConfig returns the default matching configuration.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		MaxDaysDifference:         3,
		TolerancePercentage:       decimal.NewFromFloat(0.01),
		ReviewTolerancePercentage: decimal.NewFromFloat(0.05),
		AutoMatchConfidenceFloor:  0.9,
		AmountWeight:              0.7,
		DateWeight:                0.3,
	}
}

// Validate checks the configuration for caller contract violations. Invalid
// values fail fast and are never silently clamped: adjusting the tolerance
// behind the caller's back could hide incorrect matches.
func (c MatchingConfig) Validate() error {
	if c.MaxDaysDifference < 0 {
		return domainerror.NewTransferError(
			domainerror.ErrCodeInvalidMatchingWindow,
			"max days difference must not be negative",
			domainerror.ErrInvalidMatchingWindow,
		)
	}
	if !c.TolerancePercentage.IsPositive() {
		return domainerror.NewTransferError(
			domainerror.ErrCodeInvalidTolerance,
			"tolerance percentage must be positive",
			domainerror.ErrInvalidTolerance,
		)
	}
	if !c.ReviewTolerancePercentage.IsPositive() {
		return domainerror.NewTransferError(
			domainerror.ErrCodeInvalidTolerance,
			"review tolerance percentage must be positive",
			domainerror.ErrInvalidTolerance,
		)
	}
	if c.AutoMatchConfidenceFloor < 0 || c.AutoMatchConfidenceFloor > 1 {
		return domainerror.NewTransferError(
			domainerror.ErrCodeInvalidConfidenceFloor,
			"auto-match confidence floor must be within [0,1]",
			domainerror.ErrInvalidConfidenceFloor,
		)
	}
	if c.AmountWeight < c.DateWeight {
		return domainerror.NewTransferError(
			domainerror.ErrCodeInvalidConfidenceWeights,
			"amount weight must be greater than or equal to date weight",
			domainerror.ErrInvalidConfidenceWeights,
		)
	}
	return nil
}

// WithReviewTolerance returns a copy of the configuration using the review
// tolerance as the effective tolerance.
func (c MatchingConfig) WithReviewTolerance() MatchingConfig {
	out := c
	out.TolerancePercentage = c.ReviewTolerancePercentage
	return out
}
