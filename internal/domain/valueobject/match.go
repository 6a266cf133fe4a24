// Package valueobject contains domain value objects for the LedgerLink system.
package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchType distinguishes how a candidate pair qualified.
type MatchType string

const (
	// MatchTypeExact means identical absolute amounts on the same day.
	MatchTypeExact MatchType = "exact"
	// MatchTypeTolerance means the pair qualified within the configured
	// amount and date tolerances.
	MatchTypeTolerance MatchType = "tolerance"
	// MatchTypeManual marks a link confirmed by a human reviewer.
	MatchTypeManual MatchType = "manual"
)

// MatchCandidate is a scored pair of transaction records from different
// accounts that may represent the two legs of one transfer. SourceID is
// always the lexicographically smaller id so repeated runs produce stable
// output.
type MatchCandidate struct {
	SourceID             uuid.UUID
	TargetID             uuid.UUID
	DateDifference       int // whole days
	AmountDifference     decimal.Decimal
	PercentageDifference decimal.Decimal
	Confidence           float64
	MatchType            MatchType
}

// MatchResult is the outcome of one matching run: the accepted candidates
// plus every input record that remains unmatched. It is built fresh per
// invocation and never persisted by the engine.
type MatchResult struct {
	Matches   []MatchCandidate
	Unmatched []uuid.UUID
}

// Suggestion is a review-mode candidate enriched with a human-readable
// explanation of why the pair qualified.
type Suggestion struct {
	Candidate MatchCandidate
	Reasoning string
}

// TransferSummary contains link statistics for the ledger.
type TransferSummary struct {
	LinkedPairs   int
	Unlinked      int
	TotalEligible int
}
