// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/domain/entity"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
)

// TransferRepository defines the persistence operations backing transfer
// reconciliation. The matching engine itself never touches storage; these
// operations load its input snapshot and persist the links it produces.
type TransferRepository interface {
	// ListEligible retrieves transfer-eligible transactions (non-deleted,
	// non-zero amount) inside the optional date range, oldest first.
	ListEligible(ctx context.Context, startDate, endDate *time.Time) ([]*entity.Transaction, error)

	// GetByIDs retrieves the transactions with the given ids.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Transaction, error)

	// LinkPair writes the reimbursement link on both legs of a transfer in
	// one transaction.
	LinkPair(ctx context.Context, a, b uuid.UUID) error

	// Unlink clears the reimbursement link on the given transaction and on
	// its counterpart.
	Unlink(ctx context.Context, id uuid.UUID) error

	// GetSummary retrieves link statistics for the ledger.
	GetSummary(ctx context.Context) (*valueobject.TransferSummary, error)
}

// ReconciliationLocker serializes automatic linking runs over the ledger.
// The engine assumes its input snapshot is stable for one call; the auto-link
// use case takes this lock so two concurrent callers cannot claim overlapping
// records.
type ReconciliationLocker interface {
	// TryLock attempts to acquire the reconciliation lock. It returns false
	// without blocking when another run holds it.
	TryLock(ctx context.Context) (bool, error)

	// Unlock releases the reconciliation lock.
	Unlock(ctx context.Context) error
}
