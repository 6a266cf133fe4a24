package transfer

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

func TestAutoLinkUseCase_LinksMatchedPairs(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "-825.54", testDay(0)),
		testTx(2, savingsAccount, "825.54", testDay(0)),
		testTx(3, savingsAccount, "12.00", testDay(0)),
	)
	locker := &fakeLocker{}
	uc := NewAutoLinkUseCase(repo, locker, valueobject.DefaultMatchingConfig())

	output, err := uc.Execute(context.Background(), AutoLinkInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.LinkedCount != 1 {
		t.Fatalf("expected one linked pair, got %d", output.LinkedCount)
	}
	if repo.linkCalls != 1 {
		t.Errorf("expected one LinkPair call, got %d", repo.linkCalls)
	}
	if output.UnmatchedCount != 1 {
		t.Errorf("expected one unmatched record, got %d", output.UnmatchedCount)
	}

	// Both legs carry the link after persistence.
	a := repo.transactions[txID(1)]
	b := repo.transactions[txID(2)]
	if a.ReimbursementID == nil || *a.ReimbursementID != b.ID {
		t.Error("first leg is not linked to its counterpart")
	}
	if b.ReimbursementID == nil || *b.ReimbursementID != a.ID {
		t.Error("second leg is not linked to its counterpart")
	}

	if locker.acquires != 1 || locker.releases != 1 {
		t.Errorf("expected lock acquired and released once, got %d/%d", locker.acquires, locker.releases)
	}
}

func TestAutoLinkUseCase_SecondRunSkipsClaimedRecords(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "-100.00", testDay(0)),
		testTx(2, savingsAccount, "100.00", testDay(0)),
	)
	locker := &fakeLocker{}
	uc := NewAutoLinkUseCase(repo, locker, valueobject.DefaultMatchingConfig())

	if _, err := uc.Execute(context.Background(), AutoLinkInput{}); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}

	output, err := uc.Execute(context.Background(), AutoLinkInput{})
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if output.LinkedCount != 0 {
		t.Errorf("expected no new links on second run, got %d", output.LinkedCount)
	}
	if repo.linkCalls != 1 {
		t.Errorf("expected LinkPair untouched on second run, got %d calls", repo.linkCalls)
	}
}

func TestAutoLinkUseCase_ContendedLockFails(t *testing.T) {
	repo := newFakeTransferRepository()
	locker := &fakeLocker{held: true}
	uc := NewAutoLinkUseCase(repo, locker, valueobject.DefaultMatchingConfig())

	_, err := uc.Execute(context.Background(), AutoLinkInput{})
	if !errors.Is(err, domainerror.ErrReconciliationInProgress) {
		t.Errorf("expected ErrReconciliationInProgress, got %v", err)
	}
}

func TestAutoLinkUseCase_InvalidConfigFailsBeforeLocking(t *testing.T) {
	cfg := valueobject.DefaultMatchingConfig()
	cfg.MaxDaysDifference = -1

	locker := &fakeLocker{}
	uc := NewAutoLinkUseCase(newFakeTransferRepository(), locker, cfg)

	_, err := uc.Execute(context.Background(), AutoLinkInput{})
	if !errors.Is(err, domainerror.ErrInvalidMatchingWindow) {
		t.Fatalf("expected ErrInvalidMatchingWindow, got %v", err)
	}
	if locker.acquires != 0 {
		t.Error("configuration must be validated before any matching work begins")
	}
}

func TestPreviewMatchesUseCase_DoesNotPersist(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "-50.00", testDay(0)),
		testTx(2, savingsAccount, "50.00", testDay(0)),
	)
	uc := NewPreviewMatchesUseCase(repo, valueobject.DefaultMatchingConfig())

	output, err := uc.Execute(context.Background(), PreviewMatchesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Matches) != 1 {
		t.Fatalf("expected one previewed match, got %d", len(output.Matches))
	}
	if repo.linkCalls != 0 {
		t.Error("preview must not persist links")
	}
	for _, tx := range repo.transactions {
		if tx.ReimbursementID != nil {
			t.Error("preview must not mutate stored records")
		}
	}
}

func TestGetReviewQueueUseCase_RankedSuggestions(t *testing.T) {
	repo := newFakeTransferRepository(
		testTx(1, checkingAccount, "-100.00", testDay(0)),
		testTx(2, savingsAccount, "103.00", testDay(1)),
	)
	uc := NewGetReviewQueueUseCase(repo, valueobject.DefaultMatchingConfig())

	output, err := uc.Execute(context.Background(), GetReviewQueueInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(output.Suggestions))
	}
	s := output.Suggestions[0]
	if s.Reasoning == "" {
		t.Error("expected a human-readable reasoning string")
	}
	if s.Match.MatchType != valueobject.MatchTypeTolerance {
		t.Errorf("expected tolerance match type, got %s", s.Match.MatchType)
	}
}

func TestGetSummaryUseCase(t *testing.T) {
	linkedA := testTx(1, checkingAccount, "-10.00", testDay(0))
	linkedB := testTx(2, savingsAccount, "10.00", testDay(0))
	linkedA.ReimbursementID = &linkedB.ID
	linkedB.ReimbursementID = &linkedA.ID

	repo := newFakeTransferRepository(
		linkedA,
		linkedB,
		testTx(3, savingsAccount, "7.50", testDay(1)),
	)
	uc := NewGetSummaryUseCase(repo)

	output, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.LinkedPairs != 1 || output.Unlinked != 1 || output.TotalEligible != 3 {
		t.Errorf("unexpected summary: %+v", output)
	}
}
