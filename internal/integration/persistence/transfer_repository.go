package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerlink/backend/internal/application/adapter"
	"github.com/ledgerlink/backend/internal/domain/entity"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/domain/valueobject"
	"github.com/ledgerlink/backend/internal/integration/persistence/model"
)

// transferRepository implements the adapter.TransferRepository interface.
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository instance.
func NewTransferRepository(db *gorm.DB) adapter.TransferRepository {
	return &transferRepository{
		db: db,
	}
}

// ListEligible retrieves transfer-eligible transactions inside the optional
// date range, oldest first. Soft-deleted and zero-amount records are skipped.
func (r *transferRepository) ListEligible(ctx context.Context, startDate, endDate *time.Time) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("amount != 0")

	if startDate != nil {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", endDate)
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// GetByIDs retrieves the transactions with the given ids.
func (r *transferRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Transaction, error) {
	if len(ids) == 0 {
		return []*entity.Transaction{}, nil
	}

	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// LinkPair writes the reimbursement link on both legs in one transaction.
// Each leg points at the other, so either side can resolve its counterpart.
func (r *transferRepository) LinkPair(ctx context.Context, a, b uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		if err := setLink(tx, a, &b, now); err != nil {
			return err
		}
		return setLink(tx, b, &a, now)
	})
}

// Unlink clears the reimbursement link on the given transaction and on its
// counterpart.
func (r *transferRepository) Unlink(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transactionModel model.TransactionModel
		if err := tx.Where("id = ?", id).First(&transactionModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrTransferLegNotFound
			}
			return err
		}

		if transactionModel.ReimbursementID == nil {
			return domainerror.ErrNotLinked
		}
		counterpartID := *transactionModel.ReimbursementID

		now := time.Now().UTC()
		if err := setLink(tx, id, nil, now); err != nil {
			return err
		}

		// The counterpart may have been hard-deleted out of band. Clearing a
		// half-link is still the right outcome, so a missing row is not an
		// error here.
		err := setLink(tx, counterpartID, nil, now)
		if errors.Is(err, domainerror.ErrTransferLegNotFound) {
			return nil
		}
		return err
	})
}

// GetSummary retrieves link statistics for the ledger.
func (r *transferRepository) GetSummary(ctx context.Context) (*valueobject.TransferSummary, error) {
	var totalEligible int64
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("amount != 0").
		Count(&totalEligible).Error; err != nil {
		return nil, err
	}

	var linked int64
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("amount != 0").
		Where("reimbursement_id IS NOT NULL").
		Count(&linked).Error; err != nil {
		return nil, err
	}

	return &valueobject.TransferSummary{
		LinkedPairs:   int(linked / 2),
		Unlinked:      int(totalEligible - linked),
		TotalEligible: int(totalEligible),
	}, nil
}

// setLink updates the reimbursement pointer on a single leg.
func setLink(tx *gorm.DB, id uuid.UUID, counterpart *uuid.UUID, now time.Time) error {
	result := tx.Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reimbursement_id": counterpart,
			"updated_at":       now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransferLegNotFound
	}
	return nil
}
