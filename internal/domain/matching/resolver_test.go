package matching

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

func candidate(src, tgt int, confidence float64, dateDiff int, amountDiff string) valueobject.MatchCandidate {
	return valueobject.MatchCandidate{
		SourceID:         testID(src),
		TargetID:         testID(tgt),
		Confidence:       confidence,
		DateDifference:   dateDiff,
		AmountDifference: decimal.RequireFromString(amountDiff),
		MatchType:        valueobject.MatchTypeTolerance,
	}
}

func TestResolve_GreedyByConfidence(t *testing.T) {
	candidates := []valueobject.MatchCandidate{
		candidate(1, 2, 0.80, 1, "0.50"),
		candidate(1, 3, 0.95, 0, "0.10"),
		candidate(4, 5, 0.60, 2, "1.00"),
	}

	accepted := resolve(candidates)

	if len(accepted) != 2 {
		t.Fatalf("expected two accepted candidates, got %d", len(accepted))
	}
	if accepted[0].TargetID != testID(3) {
		t.Errorf("expected the 0.95 candidate first, got target %s", accepted[0].TargetID)
	}
	if accepted[1].SourceID != testID(4) {
		t.Errorf("expected (4, 5) accepted, got source %s", accepted[1].SourceID)
	}
}

func TestResolve_TieBreakOrder(t *testing.T) {
	tests := []struct {
		name       string
		candidates []valueobject.MatchCandidate
		wantFirst  int // expected target id of the winning candidate
	}{
		{
			name: "smaller date difference wins",
			candidates: []valueobject.MatchCandidate{
				candidate(1, 2, 0.90, 2, "0.10"),
				candidate(1, 3, 0.90, 1, "0.10"),
			},
			wantFirst: 3,
		},
		{
			name: "smaller amount difference wins",
			candidates: []valueobject.MatchCandidate{
				candidate(1, 2, 0.90, 1, "0.20"),
				candidate(1, 3, 0.90, 1, "0.10"),
			},
			wantFirst: 3,
		},
		{
			name: "id order breaks exact ties",
			candidates: []valueobject.MatchCandidate{
				candidate(1, 3, 0.90, 1, "0.10"),
				candidate(1, 2, 0.90, 1, "0.10"),
			},
			wantFirst: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted := resolve(tt.candidates)
			if len(accepted) != 1 {
				t.Fatalf("expected one accepted candidate, got %d", len(accepted))
			}
			if accepted[0].TargetID != testID(tt.wantFirst) {
				t.Errorf("expected target %s to win, got %s", testID(tt.wantFirst), accepted[0].TargetID)
			}
		})
	}
}

func TestResolve_NeverDoubleClaims(t *testing.T) {
	candidates := []valueobject.MatchCandidate{
		candidate(1, 2, 0.99, 0, "0"),
		candidate(2, 3, 0.98, 0, "0"),
		candidate(3, 4, 0.97, 0, "0"),
	}

	accepted := resolve(candidates)

	if len(accepted) != 2 {
		t.Fatalf("expected chain resolved into two disjoint pairs, got %d", len(accepted))
	}
	if accepted[0].SourceID != testID(1) || accepted[1].SourceID != testID(3) {
		t.Errorf("unexpected acceptance order: %+v", accepted)
	}
}
