// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerlink/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerlink/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	accountController     *controller.AccountController
	transactionController *controller.TransactionController
	transferController    *controller.TransferController
	autoLinkRateLimiter   *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	accountController *controller.AccountController,
	transactionController *controller.TransactionController,
	transferController *controller.TransferController,
	autoLinkRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		accountController:     accountController,
		transactionController: transactionController,
		transferController:    transferController,
		autoLinkRateLimiter:   autoLinkRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.accountController != nil {
			accounts := v1.Group("/accounts")
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.transferController != nil {
			transfers := v1.Group("/transfers")
			{
				transfers.GET("/preview", r.transferController.PreviewMatches)
				// Reconciliation runs are expensive, keep the trigger rate limited
				if r.autoLinkRateLimiter != nil {
					transfers.POST("/auto-link", r.autoLinkRateLimiter.Middleware(), r.transferController.AutoLink)
				} else {
					transfers.POST("/auto-link", r.transferController.AutoLink)
				}
				transfers.GET("/review-queue", r.transferController.GetReviewQueue)
				transfers.POST("/link", r.transferController.ConfirmLink)
				transfers.POST("/unlink", r.transferController.Unlink)
				transfers.GET("/summary", r.transferController.GetSummary)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
