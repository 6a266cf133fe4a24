package steps

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlink/backend/internal/integration/persistence/model"
)

// registerSeedSteps registers ledger seeding steps.
func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the following accounts exist:$`, theFollowingAccountsExist)
	ctx.Step(`^the following transactions exist:$`, theFollowingTransactionsExist)
}

// registerTransferSteps registers reconciliation action and assertion steps.
func registerTransferSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I run an automatic reconciliation$`, iRunAnAutomaticReconciliation)
	ctx.Step(`^I preview transfer matches$`, iPreviewTransferMatches)
	ctx.Step(`^I request the review queue$`, iRequestTheReviewQueue)
	ctx.Step(`^I link transactions "([^"]*)" and "([^"]*)"$`, iLinkTransactions)
	ctx.Step(`^I force-link transactions "([^"]*)" and "([^"]*)"$`, iForceLinkTransactions)
	ctx.Step(`^I unlink transaction "([^"]*)"$`, iUnlinkTransaction)
	ctx.Step(`^transactions "([^"]*)" and "([^"]*)" should be linked together$`, transactionsShouldBeLinkedTogether)
	ctx.Step(`^transaction "([^"]*)" should not be linked$`, transactionShouldNotBeLinked)
}

// theFollowingAccountsExist seeds accounts from a table with a "name" column.
func theFollowingAccountsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	for _, row := range table.Rows[1:] {
		name := row.Cells[0].Value
		account := model.AccountModel{
			ID:        uuid.New(),
			Name:      name,
			Currency:  "USD",
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		if err := tc.db.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to seed account %q: %w", name, err)
		}
		tc.accountIDs[name] = account.ID
	}
	return nil
}

// theFollowingTransactionsExist seeds transactions from a table with columns
// label | account | date | amount | description. Labels are scenario-local
// handles used by later steps.
func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	for _, row := range table.Rows[1:] {
		label := row.Cells[0].Value
		accountName := row.Cells[1].Value

		accountID, ok := tc.accountIDs[accountName]
		if !ok {
			return fmt.Errorf("unknown account %q, seed it first", accountName)
		}

		date, err := time.Parse("2006-01-02", row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", row.Cells[2].Value, err)
		}

		amount, err := decimal.NewFromString(row.Cells[3].Value)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row.Cells[3].Value, err)
		}

		transaction := model.TransactionModel{
			ID:          uuid.New(),
			AccountID:   accountID,
			Date:        date,
			Description: row.Cells[4].Value,
			Amount:      amount,
			CreatedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
		}
		if err := tc.db.Create(&transaction).Error; err != nil {
			return fmt.Errorf("failed to seed transaction %q: %w", label, err)
		}
		tc.transactionIDs[label] = transaction.ID
	}
	return nil
}

func iRunAnAutomaticReconciliation(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(http.MethodPost, "/api/v1/transfers/auto-link", nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iPreviewTransferMatches(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(http.MethodGet, "/api/v1/transfers/preview", nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iRequestTheReviewQueue(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(http.MethodGet, "/api/v1/transfers/review-queue", nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iLinkTransactions(ctx context.Context, sourceLabel, targetLabel string) (context.Context, error) {
	return linkTransactions(ctx, sourceLabel, targetLabel, false)
}

func iForceLinkTransactions(ctx context.Context, sourceLabel, targetLabel string) (context.Context, error) {
	return linkTransactions(ctx, sourceLabel, targetLabel, true)
}

func linkTransactions(ctx context.Context, sourceLabel, targetLabel string, force bool) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	sourceID, ok := tc.transactionIDs[sourceLabel]
	if !ok {
		return ctx, fmt.Errorf("unknown transaction %q", sourceLabel)
	}
	targetID, ok := tc.transactionIDs[targetLabel]
	if !ok {
		return ctx, fmt.Errorf("unknown transaction %q", targetLabel)
	}

	body := map[string]any{
		"source_id": sourceID.String(),
		"target_id": targetID.String(),
		"force":     force,
	}
	if err := tc.doRequest(http.MethodPost, "/api/v1/transfers/link", body); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iUnlinkTransaction(ctx context.Context, label string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	id, ok := tc.transactionIDs[label]
	if !ok {
		return ctx, fmt.Errorf("unknown transaction %q", label)
	}

	body := map[string]any{"transaction_id": id.String()}
	if err := tc.doRequest(http.MethodPost, "/api/v1/transfers/unlink", body); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func transactionsShouldBeLinkedTogether(ctx context.Context, labelA, labelB string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	a, err := tc.loadTransaction(labelA)
	if err != nil {
		return err
	}
	b, err := tc.loadTransaction(labelB)
	if err != nil {
		return err
	}

	if a.ReimbursementID == nil || *a.ReimbursementID != b.ID {
		return fmt.Errorf("transaction %q is not linked to %q", labelA, labelB)
	}
	if b.ReimbursementID == nil || *b.ReimbursementID != a.ID {
		return fmt.Errorf("transaction %q is not linked to %q", labelB, labelA)
	}
	return nil
}

func transactionShouldNotBeLinked(ctx context.Context, label string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	transaction, err := tc.loadTransaction(label)
	if err != nil {
		return err
	}
	if transaction.ReimbursementID != nil {
		return fmt.Errorf("transaction %q is linked to %s", label, transaction.ReimbursementID)
	}
	return nil
}

// loadTransaction fetches a seeded transaction by its scenario label.
func (tc *TestContext) loadTransaction(label string) (*model.TransactionModel, error) {
	id, ok := tc.transactionIDs[label]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %q", label)
	}

	var transaction model.TransactionModel
	if err := tc.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to load transaction %q: %w", label, err)
	}
	return &transaction, nil
}
