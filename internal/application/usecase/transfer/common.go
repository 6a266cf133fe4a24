// Package transfer contains transfer reconciliation use cases.
package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// MatchOutput represents one accepted or suggested match pair.
type MatchOutput struct {
	SourceID             uuid.UUID
	TargetID             uuid.UUID
	DateDifference       int
	AmountDifference     decimal.Decimal
	PercentageDifference decimal.Decimal
	Confidence           float64
	MatchType            valueobject.MatchType
}

// toMatchOutput converts an engine candidate to the use case output shape.
func toMatchOutput(c valueobject.MatchCandidate) MatchOutput {
	return MatchOutput{
		SourceID:             c.SourceID,
		TargetID:             c.TargetID,
		DateDifference:       c.DateDifference,
		AmountDifference:     c.AmountDifference,
		PercentageDifference: c.PercentageDifference,
		Confidence:           c.Confidence,
		MatchType:            c.MatchType,
	}
}

// DateRangeInput bounds the ledger snapshot passed to the engine. Both ends
// are optional; an unbounded range reconciles the whole ledger.
type DateRangeInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}
