// Package matching implements the transfer reconciliation engine: it detects
// when two transactions recorded independently in two different accounts
// represent the same movement of money and pairs them so the transfer is not
// double-counted as income and expense.
//
// The engine is a pure, synchronous computation over an in-memory record set.
// It holds no shared mutable state; concurrent invocations with disjoint
// inputs need no coordination.
package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/domain/entity"
)

// record is the matching-relevant projection of a transaction. Day is the
// calendar day as days since the Unix epoch in UTC; time-of-day is not
// significant for matching.
type record struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Day         int
	Amount      decimal.Decimal
	AbsAmount   decimal.Decimal
	Description string
	Linked      bool
}

// epochDay truncates a timestamp to its UTC calendar day, expressed as days
// since the Unix epoch.
func epochDay(t time.Time) int {
	t = t.UTC()
	return int(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// normalize extracts the transfer-eligible records from a heterogeneous
// collection of transactions. Malformed records (zero amount, zero date,
// missing account, soft-deleted) are excluded rather than rejected: callers
// may pass partially populated data.
func normalize(transactions []*entity.Transaction) []record {
	records := make([]record, 0, len(transactions))
	for _, tx := range transactions {
		if tx == nil || tx.DeletedAt != nil {
			continue
		}
		if tx.Amount.IsZero() || tx.Date.IsZero() || tx.AccountID == uuid.Nil || tx.ID == uuid.Nil {
			continue
		}
		records = append(records, record{
			ID:          tx.ID,
			AccountID:   tx.AccountID,
			Day:         epochDay(tx.Date),
			Amount:      tx.Amount,
			AbsAmount:   tx.Amount.Abs(),
			Description: tx.Description,
			Linked:      tx.IsLinked(),
		})
	}
	return records
}
