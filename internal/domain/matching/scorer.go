package matching

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// score applies the hard constraints and computes the tolerance score for a
// candidate pair. It returns false when the pair is disqualified.
//
// The opposite-sign constraint is evaluated first and short-circuits: a
// transfer is conserved value leaving one account and arriving in another,
// so same-sign pairs are never transfers no matter how closely amounts and
// dates coincide. It is never relaxed, in any mode.
func score(a, b record, pair candidatePair, cfg valueobject.MatchingConfig) (valueobject.MatchCandidate, bool) {
	if a.Amount.IsPositive() == b.Amount.IsPositive() {
		return valueobject.MatchCandidate{}, false
	}

	amountDiff := a.AbsAmount.Sub(b.AbsAmount).Abs()
	avgAbs := a.AbsAmount.Add(b.AbsAmount).Div(decimal.NewFromInt(2))
	if avgAbs.IsZero() {
		// Zero-amount records are excluded upstream; an all-zero pair has an
		// undefined percentage difference and is disqualifying regardless.
		return valueobject.MatchCandidate{}, false
	}

	percentDiff := amountDiff.Div(avgAbs)
	if percentDiff.GreaterThan(cfg.TolerancePercentage) {
		return valueobject.MatchCandidate{}, false
	}

	confidence := combineScores(percentDiff, pair.dateDiff, cfg)

	matchType := valueobject.MatchTypeTolerance
	if amountDiff.IsZero() && pair.dateDiff == 0 {
		matchType = valueobject.MatchTypeExact
	}

	return valueobject.MatchCandidate{
		SourceID:             a.ID,
		TargetID:             b.ID,
		DateDifference:       pair.dateDiff,
		AmountDifference:     amountDiff,
		PercentageDifference: percentDiff,
		Confidence:           confidence,
		MatchType:            matchType,
	}, true
}

// combineScores derives the confidence value in [0,1] from the amount and
// date sub-scores, weighted toward amount closeness.
func combineScores(percentDiff decimal.Decimal, dateDiff int, cfg valueobject.MatchingConfig) float64 {
	ratio := percentDiff.Div(cfg.TolerancePercentage).InexactFloat64()
	if ratio > 1 {
		ratio = 1
	}
	amountScore := 1 - ratio

	dateScore := 1.0
	if cfg.MaxDaysDifference > 0 {
		dateScore = 1 - float64(dateDiff)/float64(cfg.MaxDaysDifference)
	}

	confidence := cfg.AmountWeight*amountScore + cfg.DateWeight*dateScore
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// compareIDs orders ids lexicographically (byte order matches the hex string
// form, so output ordering is stable and reproducible).
func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
