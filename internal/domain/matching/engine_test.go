package matching

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/entity"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

var (
	accountA = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	accountB = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	accountC = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003")
)

func testID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func onDay(n int) time.Time {
	return time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func makeTx(id int, account uuid.UUID, amount string, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:          testID(id),
		AccountID:   account,
		Date:        date,
		Description: fmt.Sprintf("tx %d", id),
		Amount:      decimal.RequireFromString(amount),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(valueobject.DefaultMatchingConfig())
	if err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}
	return engine
}

func TestFindMatches_ExactTransfer(t *testing.T) {
	engine := newTestEngine(t)

	// Scenario: withdrawal and matching deposit, same day, different accounts.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-825.54", onDay(0)),
		makeTx(2, accountB, "825.54", onDay(0)),
	}

	result := engine.FindMatches(records)

	if len(result.Matches) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(result.Matches))
	}
	m := result.Matches[0]
	if !m.AmountDifference.IsZero() {
		t.Errorf("expected zero amount difference, got %s", m.AmountDifference)
	}
	if m.DateDifference != 0 {
		t.Errorf("expected zero date difference, got %d", m.DateDifference)
	}
	if m.MatchType != valueobject.MatchTypeExact {
		t.Errorf("expected exact match type, got %s", m.MatchType)
	}
	if m.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", m.Confidence)
	}
	if m.SourceID != testID(1) || m.TargetID != testID(2) {
		t.Errorf("expected stable id order (1, 2), got (%s, %s)", m.SourceID, m.TargetID)
	}
	if len(result.Unmatched) != 0 {
		t.Errorf("expected no unmatched records, got %d", len(result.Unmatched))
	}
}

func TestFindMatches_SameSignNeverMatches(t *testing.T) {
	engine := newTestEngine(t)

	// Two deposits with identical amounts and dates are never a transfer.
	records := []*entity.Transaction{
		makeTx(1, accountA, "825.54", onDay(0)),
		makeTx(2, accountB, "825.54", onDay(0)),
	}

	result := engine.FindMatches(records)

	if len(result.Matches) != 0 {
		t.Fatalf("expected zero matches for same-sign pair, got %d", len(result.Matches))
	}
	if len(result.Unmatched) != 2 {
		t.Errorf("expected both records unmatched, got %d", len(result.Unmatched))
	}
}

func TestFindMatches_WithinTolerance(t *testing.T) {
	engine := newTestEngine(t)

	// Amounts differ by 0.54 (~0.065% of the average), inside the 1% tolerance.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-825.54", onDay(0)),
		makeTx(2, accountB, "825.00", onDay(0)),
	}

	result := engine.FindMatches(records)

	if len(result.Matches) != 1 {
		t.Fatalf("expected one match, got %d", len(result.Matches))
	}
	m := result.Matches[0]
	if !m.AmountDifference.Equal(decimal.RequireFromString("0.54")) {
		t.Errorf("expected amount difference 0.54, got %s", m.AmountDifference)
	}
	if m.MatchType != valueobject.MatchTypeTolerance {
		t.Errorf("expected tolerance match type, got %s", m.MatchType)
	}
	if m.PercentageDifference.GreaterThanOrEqual(decimal.RequireFromString("0.01")) {
		t.Errorf("expected percentage difference below 1%%, got %s", m.PercentageDifference)
	}
}

func TestFindMatches_ToleranceBoundaryIsInclusive(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name        string
		amountA     string
		amountB     string
		wantMatches int
	}{
		// diff 2 over average 200 is exactly the 1% tolerance.
		{"exactly at tolerance accepted", "-199", "201", 1},
		// diff 2.10 over average 200.05 is just above 1%.
		{"strictly above tolerance rejected", "-199", "201.10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*entity.Transaction{
				makeTx(1, accountA, tt.amountA, onDay(0)),
				makeTx(2, accountB, tt.amountB, onDay(0)),
			}
			result := engine.FindMatches(records)
			if len(result.Matches) != tt.wantMatches {
				t.Errorf("expected %d matches, got %d", tt.wantMatches, len(result.Matches))
			}
		})
	}
}

func TestFindMatches_DateBoundaryIsInclusive(t *testing.T) {
	engine := newTestEngine(t) // window of 3 days

	tests := []struct {
		name        string
		daysApart   int
		wantMatches int
	}{
		{"same day", 0, 1},
		{"exactly at window accepted", 3, 1},
		{"strictly beyond window rejected", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*entity.Transaction{
				makeTx(1, accountA, "-100.00", onDay(0)),
				makeTx(2, accountB, "100.00", onDay(tt.daysApart)),
			}
			result := engine.FindMatches(records)
			if len(result.Matches) != tt.wantMatches {
				t.Errorf("expected %d matches, got %d", tt.wantMatches, len(result.Matches))
			}
			if tt.wantMatches == 1 && result.Matches[0].DateDifference != tt.daysApart {
				t.Errorf("expected date difference %d, got %d", tt.daysApart, result.Matches[0].DateDifference)
			}
		})
	}
}

func TestFindMatches_SameAccountExcluded(t *testing.T) {
	engine := newTestEngine(t)

	records := []*entity.Transaction{
		makeTx(1, accountA, "-50.00", onDay(0)),
		makeTx(2, accountA, "50.00", onDay(0)),
	}

	result := engine.FindMatches(records)

	if len(result.Matches) != 0 {
		t.Fatalf("expected no matches for same-account pair, got %d", len(result.Matches))
	}
}

func TestFindMatches_HigherConfidenceWinsConflicts(t *testing.T) {
	engine := newTestEngine(t)

	// X could pair with Y (exact) or Z (tolerance, a day later). Only the
	// higher-confidence X-Y pair is accepted; Z stays unmatched.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-100.00", onDay(0)), // X
		makeTx(2, accountB, "100.00", onDay(0)),  // Y
		makeTx(3, accountC, "100.40", onDay(1)),  // Z
	}

	result := engine.FindMatches(records)

	if len(result.Matches) != 1 {
		t.Fatalf("expected one match, got %d", len(result.Matches))
	}
	m := result.Matches[0]
	if m.SourceID != testID(1) || m.TargetID != testID(2) {
		t.Errorf("expected X-Y accepted, got (%s, %s)", m.SourceID, m.TargetID)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != testID(3) {
		t.Errorf("expected Z unmatched, got %v", result.Unmatched)
	}
}

func TestFindMatches_NoDoubleClaim(t *testing.T) {
	engine := newTestEngine(t)

	// Several plausible counterparts; every record may appear in at most one
	// accepted match.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-200.00", onDay(0)),
		makeTx(2, accountB, "200.00", onDay(0)),
		makeTx(3, accountB, "200.00", onDay(1)),
		makeTx(4, accountA, "-200.00", onDay(1)),
		makeTx(5, accountC, "200.00", onDay(2)),
	}

	result := engine.FindMatches(records)

	seen := make(map[uuid.UUID]bool)
	for _, m := range result.Matches {
		if seen[m.SourceID] {
			t.Errorf("record %s claimed twice", m.SourceID)
		}
		if seen[m.TargetID] {
			t.Errorf("record %s claimed twice", m.TargetID)
		}
		seen[m.SourceID] = true
		seen[m.TargetID] = true
	}
}

func TestFindMatches_OppositeSignInvariant(t *testing.T) {
	engine := newTestEngine(t)

	// Mixed set of signs across three accounts.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-75.00", onDay(0)),
		makeTx(2, accountB, "75.00", onDay(0)),
		makeTx(3, accountC, "75.00", onDay(0)),
		makeTx(4, accountB, "-20.00", onDay(1)),
		makeTx(5, accountC, "-20.00", onDay(1)),
		makeTx(6, accountA, "20.00", onDay(2)),
	}

	byID := make(map[uuid.UUID]*entity.Transaction)
	for _, r := range records {
		byID[r.ID] = r
	}

	result := engine.FindMatches(records)

	for _, m := range result.Matches {
		src, tgt := byID[m.SourceID], byID[m.TargetID]
		if src.Amount.IsPositive() == tgt.Amount.IsPositive() {
			t.Errorf("accepted match (%s, %s) violates opposite-sign invariant", m.SourceID, m.TargetID)
		}
		if src.AccountID == tgt.AccountID {
			t.Errorf("accepted match (%s, %s) pairs records in the same account", m.SourceID, m.TargetID)
		}
	}
}

func TestFindMatches_Deterministic(t *testing.T) {
	engine := newTestEngine(t)

	build := func() []*entity.Transaction {
		return []*entity.Transaction{
			makeTx(1, accountA, "-300.00", onDay(0)),
			makeTx(2, accountB, "300.00", onDay(1)),
			makeTx(3, accountC, "300.00", onDay(1)),
			makeTx(4, accountA, "-42.00", onDay(2)),
			makeTx(5, accountB, "42.10", onDay(3)),
		}
	}

	first := engine.FindMatches(build())
	second := engine.FindMatches(build())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different results:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestFindMatches_DropsIneligibleRecords(t *testing.T) {
	engine := newTestEngine(t)

	zeroDate := &entity.Transaction{
		ID:        testID(3),
		AccountID: accountB,
		Amount:    decimal.RequireFromString("10.00"),
	}
	noAccount := &entity.Transaction{
		ID:     testID(4),
		Date:   onDay(0),
		Amount: decimal.RequireFromString("10.00"),
	}
	records := []*entity.Transaction{
		makeTx(1, accountA, "-10.00", onDay(0)),
		makeTx(2, accountB, "0", onDay(0)), // zero amount
		zeroDate,
		noAccount,
	}

	result := engine.FindMatches(records)

	if len(result.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(result.Matches))
	}
	// Truly unusable records are omitted from both matches and unmatched.
	if len(result.Unmatched) != 1 || result.Unmatched[0] != testID(1) {
		t.Errorf("expected only the eligible record in unmatched, got %v", result.Unmatched)
	}
}

func TestAutoMatch_LinksBothLegs(t *testing.T) {
	engine := newTestEngine(t)

	records := []*entity.Transaction{
		makeTx(1, accountA, "-825.54", onDay(0)),
		makeTx(2, accountB, "825.54", onDay(0)),
	}

	linked, result := engine.AutoMatch(records)

	if len(result.Matches) != 1 {
		t.Fatalf("expected one auto-linked pair, got %d", len(result.Matches))
	}
	if linked[0].ReimbursementID == nil || *linked[0].ReimbursementID != testID(2) {
		t.Errorf("expected first leg linked to %s, got %v", testID(2), linked[0].ReimbursementID)
	}
	if linked[1].ReimbursementID == nil || *linked[1].ReimbursementID != testID(1) {
		t.Errorf("expected second leg linked to %s, got %v", testID(1), linked[1].ReimbursementID)
	}

	// The caller's snapshot is never mutated.
	if records[0].ReimbursementID != nil || records[1].ReimbursementID != nil {
		t.Error("AutoMatch mutated the input records")
	}
}

func TestAutoMatch_BelowFloorLeftForReview(t *testing.T) {
	cfg := valueobject.DefaultMatchingConfig()
	cfg.AutoMatchConfidenceFloor = 0.95
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}

	// Qualifies under tolerance but lands below the 0.95 floor.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-100.00", onDay(0)),
		makeTx(2, accountB, "100.40", onDay(1)),
	}

	linked, result := engine.AutoMatch(records)

	if len(result.Matches) != 0 {
		t.Fatalf("expected no auto-linked pairs below the floor, got %d", len(result.Matches))
	}
	for _, tx := range linked {
		if tx.ReimbursementID != nil {
			t.Errorf("record %s should not be linked below the floor", tx.ID)
		}
	}
	if len(result.Unmatched) != 2 {
		t.Errorf("expected both records reported unmatched, got %v", result.Unmatched)
	}
}

func TestAutoMatch_ClaimedRecordsExcluded(t *testing.T) {
	engine := newTestEngine(t)

	counterpart := testID(99)
	already := makeTx(1, accountA, "-50.00", onDay(0))
	already.ReimbursementID = &counterpart

	records := []*entity.Transaction{
		already,
		makeTx(2, accountB, "50.00", onDay(0)),
	}

	linked, result := engine.AutoMatch(records)

	if len(result.Matches) != 0 {
		t.Fatalf("expected claimed record to be skipped, got %d matches", len(result.Matches))
	}
	if linked[0].ReimbursementID == nil || *linked[0].ReimbursementID != counterpart {
		t.Error("existing link must be preserved in the returned record set")
	}
}

func TestFindManualMatches_LooserToleranceAndReasoning(t *testing.T) {
	engine := newTestEngine(t)

	// 3% apart: outside the 1% automatic tolerance, inside the 5% review one.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-100.00", onDay(0)),
		makeTx(2, accountB, "103.00", onDay(0)),
	}

	if auto := engine.FindMatches(records); len(auto.Matches) != 0 {
		t.Fatalf("expected no automatic matches, got %d", len(auto.Matches))
	}

	suggestions := engine.FindManualMatches(records)
	if len(suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(suggestions))
	}

	s := suggestions[0]
	if s.Candidate.MatchType != valueobject.MatchTypeTolerance {
		t.Errorf("expected tolerance match type, got %s", s.Candidate.MatchType)
	}
	if !strings.Contains(s.Reasoning, "Amounts differ by $3.00") {
		t.Errorf("unexpected reasoning: %q", s.Reasoning)
	}
	if !strings.Contains(s.Reasoning, "0 days apart") {
		t.Errorf("expected date distance in reasoning, got %q", s.Reasoning)
	}

	// Review mode never mutates input.
	if records[0].ReimbursementID != nil || records[1].ReimbursementID != nil {
		t.Error("FindManualMatches mutated the input records")
	}
}

func TestFindManualMatches_RankedAndIncludesConflicts(t *testing.T) {
	engine := newTestEngine(t)

	// One withdrawal with two plausible deposits: review mode surfaces both,
	// best first, and leaves the choice to the human.
	records := []*entity.Transaction{
		makeTx(1, accountA, "-100.00", onDay(0)),
		makeTx(2, accountB, "100.00", onDay(0)),
		makeTx(3, accountC, "101.00", onDay(1)),
	}

	suggestions := engine.FindManualMatches(records)

	if len(suggestions) != 2 {
		t.Fatalf("expected two ranked suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Candidate.Confidence < suggestions[1].Candidate.Confidence {
		t.Error("suggestions are not ranked by confidence")
	}
	if suggestions[0].Candidate.TargetID != testID(2) {
		t.Errorf("expected the exact pair ranked first, got target %s", suggestions[0].Candidate.TargetID)
	}
	if suggestions[0].Reasoning != "Amounts match exactly on the same day" {
		t.Errorf("unexpected exact-match reasoning: %q", suggestions[0].Reasoning)
	}
}

func TestNewEngine_InvalidConfigFailsFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*valueobject.MatchingConfig)
	}{
		{"negative window", func(c *valueobject.MatchingConfig) { c.MaxDaysDifference = -1 }},
		{"zero tolerance", func(c *valueobject.MatchingConfig) { c.TolerancePercentage = decimal.Zero }},
		{"negative tolerance", func(c *valueobject.MatchingConfig) {
			c.TolerancePercentage = decimal.RequireFromString("-0.01")
		}},
		{"zero review tolerance", func(c *valueobject.MatchingConfig) { c.ReviewTolerancePercentage = decimal.Zero }},
		{"floor above one", func(c *valueobject.MatchingConfig) { c.AutoMatchConfidenceFloor = 1.5 }},
		{"date weight above amount weight", func(c *valueobject.MatchingConfig) {
			c.AmountWeight, c.DateWeight = 0.3, 0.7
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valueobject.DefaultMatchingConfig()
			tt.mutate(&cfg)
			if _, err := NewEngine(cfg); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}
}
