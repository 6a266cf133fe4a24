package matching

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// resolve selects a conflict-free assignment from the scored candidate set:
// no record participates in more than one accepted match. Candidates are
// ranked by confidence descending with a fully deterministic tie-break
// (smaller date difference, then smaller amount difference, then id order)
// and accepted greedily.
//
// Greedy-by-confidence is not globally optimal (that would be a weighted
// bipartite matching problem) but reconciliation is advisory: determinism and
// explainability of each accepted pair matter more than a maximal match
// count, and personal ledgers are small enough that greedy assignment is
// accurate in practice. Resolution is sequential to preserve the tie-break
// order.
func resolve(candidates []valueobject.MatchCandidate) []valueobject.MatchCandidate {
	rankCandidates(candidates)

	claimed := make(map[uuid.UUID]bool, len(candidates)*2)
	accepted := make([]valueobject.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if claimed[c.SourceID] || claimed[c.TargetID] {
			continue
		}
		claimed[c.SourceID] = true
		claimed[c.TargetID] = true
		accepted = append(accepted, c)
	}
	return accepted
}

// rankCandidates sorts candidates into the deterministic acceptance order.
func rankCandidates(candidates []valueobject.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.DateDifference != b.DateDifference {
			return a.DateDifference < b.DateDifference
		}
		if cmp := a.AmountDifference.Cmp(b.AmountDifference); cmp != 0 {
			return cmp < 0
		}
		if cmp := compareIDs(a.SourceID, b.SourceID); cmp != 0 {
			return cmp < 0
		}
		return compareIDs(a.TargetID, b.TargetID) < 0
	})
}
