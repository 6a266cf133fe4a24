// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerlink/backend/config"
	"github.com/ledgerlink/backend/internal/application/usecase/account"
	"github.com/ledgerlink/backend/internal/application/usecase/transaction"
	"github.com/ledgerlink/backend/internal/application/usecase/transfer"
	"github.com/ledgerlink/backend/internal/infra/server/router"
	"github.com/ledgerlink/backend/internal/integration/adapters"
	"github.com/ledgerlink/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerlink/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerlink/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The matching configuration is validated before any use case runs.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *goredis.Client) (*Injector, error) {
	matchingConfig := cfg.ToMatchingConfig()
	if err := matchingConfig.Validate(); err != nil {
		return nil, err
	}

	// Create repositories
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	transferRepo := persistence.NewTransferRepository(db)

	// Create adapters
	reconciliationLocker := adapters.NewRedisReconciliationLocker(redisClient)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create transfer use cases
	previewMatchesUseCase := transfer.NewPreviewMatchesUseCase(transferRepo, matchingConfig)
	autoLinkUseCase := transfer.NewAutoLinkUseCase(transferRepo, reconciliationLocker, matchingConfig)
	getReviewQueueUseCase := transfer.NewGetReviewQueueUseCase(transferRepo, matchingConfig)
	confirmLinkUseCase := transfer.NewConfirmLinkUseCase(transferRepo, matchingConfig)
	unlinkUseCase := transfer.NewUnlinkUseCase(transferRepo)
	getSummaryUseCase := transfer.NewGetSummaryUseCase(transferRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			return redisClient.Ping(context.Background()).Err() == nil
		},
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		deleteTransactionUseCase,
	)

	transferController := controller.NewTransferController(
		previewMatchesUseCase,
		autoLinkUseCase,
		getReviewQueueUseCase,
		confirmLinkUseCase,
		unlinkUseCase,
		getSummaryUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var autoLinkRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		autoLinkRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		autoLinkRateLimiter = middleware.NewRateLimiter()
	}

	// Create router
	r := router.NewRouter(healthController, accountController, transactionController, transferController, autoLinkRateLimiter)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}, nil
}
