package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/entity"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// fakeTransferRepository is an in-memory TransferRepository for use case tests.
type fakeTransferRepository struct {
	transactions map[uuid.UUID]*entity.Transaction
	linkCalls    int
	failLink     error
}

func newFakeTransferRepository(transactions ...*entity.Transaction) *fakeTransferRepository {
	repo := &fakeTransferRepository{transactions: make(map[uuid.UUID]*entity.Transaction)}
	for _, tx := range transactions {
		repo.transactions[tx.ID] = tx
	}
	return repo
}

func (r *fakeTransferRepository) ListEligible(_ context.Context, _, _ *time.Time) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		out = append(out, tx)
	}
	return out, nil
}

func (r *fakeTransferRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, id := range ids {
		if tx, ok := r.transactions[id]; ok {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTransferRepository) LinkPair(_ context.Context, a, b uuid.UUID) error {
	if r.failLink != nil {
		return r.failLink
	}
	ta, okA := r.transactions[a]
	tb, okB := r.transactions[b]
	if !okA || !okB {
		return fmt.Errorf("unknown transaction in pair (%s, %s)", a, b)
	}
	ta.ReimbursementID = &tb.ID
	tb.ReimbursementID = &ta.ID
	r.linkCalls++
	return nil
}

func (r *fakeTransferRepository) Unlink(_ context.Context, id uuid.UUID) error {
	tx, ok := r.transactions[id]
	if !ok || tx.ReimbursementID == nil {
		return fmt.Errorf("transaction %s is not linked", id)
	}
	if other, ok := r.transactions[*tx.ReimbursementID]; ok {
		other.ReimbursementID = nil
	}
	tx.ReimbursementID = nil
	return nil
}

func (r *fakeTransferRepository) GetSummary(_ context.Context) (*valueobject.TransferSummary, error) {
	summary := &valueobject.TransferSummary{}
	for _, tx := range r.transactions {
		summary.TotalEligible++
		if tx.ReimbursementID != nil {
			summary.LinkedPairs++
		} else {
			summary.Unlinked++
		}
	}
	summary.LinkedPairs /= 2
	return summary, nil
}

// fakeLocker is an in-memory ReconciliationLocker.
type fakeLocker struct {
	held     bool
	acquires int
	releases int
}

func (l *fakeLocker) TryLock(_ context.Context) (bool, error) {
	if l.held {
		return false, nil
	}
	l.held = true
	l.acquires++
	return true, nil
}

func (l *fakeLocker) Unlock(_ context.Context) error {
	l.held = false
	l.releases++
	return nil
}

func txID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func testTx(id int, account uuid.UUID, amount string, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:          txID(id),
		AccountID:   account,
		Date:        date,
		Description: fmt.Sprintf("tx %d", id),
		Amount:      decimal.RequireFromString(amount),
	}
}

var (
	checkingAccount = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	savingsAccount  = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

func testDay(n int) time.Time {
	return time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}
