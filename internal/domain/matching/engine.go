package matching

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/entity"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// Engine runs the transfer matching pipeline in one of two modes: automatic
// linking behind a conservative confidence floor, or manual review with a
// looser tolerance and no persistence.
type Engine struct {
	cfg valueobject.MatchingConfig
}

// NewEngine creates a matching engine. Invalid configuration fails fast
// before any matching work begins.
func NewEngine(cfg valueobject.MatchingConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// FindMatches runs the full pipeline and returns the conflict-free accepted
// matches plus the records that remain unmatched. Side-effect free; used for
// preview and as the basis of automatic linking.
func (e *Engine) FindMatches(transactions []*entity.Transaction) *valueobject.MatchResult {
	return e.run(normalize(transactions), e.cfg)
}

// AutoMatch runs the pipeline with the configured confidence floor and
// returns a new record set with the reimbursement link populated on both
// legs of every accepted pair. The input is never mutated; persisting the
// returned records is the caller's responsibility.
//
// Records that already carry a link are claimed and excluded up front: an
// automatic pass never silently re-matches them. The caller must clear the
// link explicitly to make a record eligible again.
func (e *Engine) AutoMatch(transactions []*entity.Transaction) ([]*entity.Transaction, *valueobject.MatchResult) {
	records := normalize(transactions)
	eligible := records[:0:0]
	for _, r := range records {
		if !r.Linked {
			eligible = append(eligible, r)
		}
	}

	result := e.run(eligible, e.cfg)

	// Keep only candidates safe to link without review.
	accepted := make([]valueobject.MatchCandidate, 0, len(result.Matches))
	counterpart := make(map[uuid.UUID]uuid.UUID, len(result.Matches)*2)
	for _, m := range result.Matches {
		if m.Confidence < e.cfg.AutoMatchConfidenceFloor {
			result.Unmatched = append(result.Unmatched, m.SourceID, m.TargetID)
			continue
		}
		accepted = append(accepted, m)
		counterpart[m.SourceID] = m.TargetID
		counterpart[m.TargetID] = m.SourceID
	}
	result.Matches = accepted

	// Fresh record set: linking never mutates the caller's snapshot, which
	// removes aliasing issues when the same ledger is read concurrently.
	linked := make([]*entity.Transaction, len(transactions))
	for i, tx := range transactions {
		if tx == nil {
			continue
		}
		cp := *tx
		if other, ok := counterpart[tx.ID]; ok {
			id := other
			cp.ReimbursementID = &id
		}
		linked[i] = &cp
	}
	return linked, result
}

// FindManualMatches runs the pipeline with the looser review tolerance and
// returns every surviving candidate, ranked, with a human-readable
// explanation. No conflict resolution and no persistence: a human must
// confirm before any link is written.
func (e *Engine) FindManualMatches(transactions []*entity.Transaction) []valueobject.Suggestion {
	cfg := e.cfg.WithReviewTolerance()

	records := normalize(transactions)
	eligible := records[:0:0]
	for _, r := range records {
		if !r.Linked {
			eligible = append(eligible, r)
		}
	}

	candidates := e.scoreAll(eligible, cfg)
	rankCandidates(candidates)

	suggestions := make([]valueobject.Suggestion, len(candidates))
	for i, c := range candidates {
		suggestions[i] = valueobject.Suggestion{
			Candidate: c,
			Reasoning: buildReasoning(c),
		}
	}
	return suggestions
}

// run executes candidate generation, scoring and assignment over normalized
// records.
func (e *Engine) run(records []record, cfg valueobject.MatchingConfig) *valueobject.MatchResult {
	accepted := resolve(e.scoreAll(records, cfg))

	claimed := make(map[uuid.UUID]bool, len(accepted)*2)
	for _, m := range accepted {
		claimed[m.SourceID] = true
		claimed[m.TargetID] = true
	}

	unmatched := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		if !claimed[r.ID] {
			unmatched = append(unmatched, r.ID)
		}
	}

	return &valueobject.MatchResult{
		Matches:   accepted,
		Unmatched: unmatched,
	}
}

// scoreAll generates window candidates and scores the ones that pass the
// hard constraints.
func (e *Engine) scoreAll(records []record, cfg valueobject.MatchingConfig) []valueobject.MatchCandidate {
	pairs := generateCandidates(records, cfg.MaxDaysDifference)

	candidates := make([]valueobject.MatchCandidate, 0, len(pairs))
	for _, p := range pairs {
		if c, ok := score(records[p.a], records[p.b], p, cfg); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// buildReasoning explains why a candidate qualified, for the review queue.
func buildReasoning(c valueobject.MatchCandidate) string {
	if c.MatchType == valueobject.MatchTypeExact {
		return "Amounts match exactly on the same day"
	}
	pct := c.PercentageDifference.Mul(decimal.NewFromInt(100)).Round(2)
	return fmt.Sprintf(
		"Amounts differ by $%s (%s%%), %d days apart",
		c.AmountDifference.StringFixed(2), pct.String(), c.DateDifference,
	)
}
