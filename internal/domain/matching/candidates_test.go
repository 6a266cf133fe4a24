package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func makeRecord(id int, account int, day int, amount string) record {
	amt := decimal.RequireFromString(amount)
	var acct uuid.UUID
	acct[15] = byte(account)
	return record{
		ID:        testID(id),
		AccountID: acct,
		Day:       day,
		Amount:    amt,
		AbsAmount: amt.Abs(),
	}
}

func TestGenerateCandidates_NoPairGeneratedTwice(t *testing.T) {
	records := []record{
		makeRecord(1, 1, 0, "-10"),
		makeRecord(2, 2, 0, "10"),
		makeRecord(3, 2, 1, "10"),
		makeRecord(4, 3, 2, "-10"),
		makeRecord(5, 1, 3, "10"),
	}

	pairs := generateCandidates(records, 3)

	seen := make(map[[2]int]bool)
	for _, p := range pairs {
		key := [2]int{p.a, p.b}
		if p.a > p.b {
			key = [2]int{p.b, p.a}
		}
		if seen[key] {
			t.Errorf("pair (%d, %d) generated twice", key[0], key[1])
		}
		seen[key] = true
	}
}

func TestGenerateCandidates_RespectsWindow(t *testing.T) {
	records := []record{
		makeRecord(1, 1, 0, "-10"),
		makeRecord(2, 2, 2, "10"),
		makeRecord(3, 2, 5, "10"),
	}

	pairs := generateCandidates(records, 2)

	if len(pairs) != 1 {
		t.Fatalf("expected one in-window pair, got %d", len(pairs))
	}
	if pairs[0].dateDiff != 2 {
		t.Errorf("expected date difference 2, got %d", pairs[0].dateDiff)
	}
}

func TestGenerateCandidates_SkipsSameAccount(t *testing.T) {
	records := []record{
		makeRecord(1, 1, 0, "-10"),
		makeRecord(2, 1, 0, "10"),
		makeRecord(3, 1, 1, "10"),
	}

	if pairs := generateCandidates(records, 3); len(pairs) != 0 {
		t.Errorf("expected no pairs within one account, got %d", len(pairs))
	}
}

func TestGenerateCandidates_OrdersPairByID(t *testing.T) {
	// Insertion order reversed relative to id order.
	records := []record{
		makeRecord(9, 1, 1, "10"),
		makeRecord(2, 2, 0, "-10"),
	}

	pairs := generateCandidates(records, 3)

	if len(pairs) != 1 {
		t.Fatalf("expected one pair, got %d", len(pairs))
	}
	p := pairs[0]
	if records[p.a].ID != testID(2) || records[p.b].ID != testID(9) {
		t.Errorf("expected lower id first, got (%s, %s)", records[p.a].ID, records[p.b].ID)
	}
}

func TestGenerateCandidates_ZeroWindowSameDayOnly(t *testing.T) {
	records := []record{
		makeRecord(1, 1, 0, "-10"),
		makeRecord(2, 2, 0, "10"),
		makeRecord(3, 2, 1, "10"),
	}

	pairs := generateCandidates(records, 0)

	if len(pairs) != 1 {
		t.Fatalf("expected only the same-day pair, got %d", len(pairs))
	}
	if pairs[0].dateDiff != 0 {
		t.Errorf("expected zero date difference, got %d", pairs[0].dateDiff)
	}
}
