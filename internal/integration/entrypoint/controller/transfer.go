// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerlink/backend/internal/application/usecase/transfer"
	domainerror "github.com/ledgerlink/backend/internal/domain/error"
	"github.com/ledgerlink/backend/internal/integration/entrypoint/dto"
)

// TransferController handles transfer reconciliation endpoints.
type TransferController struct {
	previewMatchesUseCase *transfer.PreviewMatchesUseCase
	autoLinkUseCase       *transfer.AutoLinkUseCase
	getReviewQueueUseCase *transfer.GetReviewQueueUseCase
	confirmLinkUseCase    *transfer.ConfirmLinkUseCase
	unlinkUseCase         *transfer.UnlinkUseCase
	getSummaryUseCase     *transfer.GetSummaryUseCase
}

// NewTransferController creates a new transfer controller instance.
func NewTransferController(
	previewMatchesUseCase *transfer.PreviewMatchesUseCase,
	autoLinkUseCase *transfer.AutoLinkUseCase,
	getReviewQueueUseCase *transfer.GetReviewQueueUseCase,
	confirmLinkUseCase *transfer.ConfirmLinkUseCase,
	unlinkUseCase *transfer.UnlinkUseCase,
	getSummaryUseCase *transfer.GetSummaryUseCase,
) *TransferController {
	return &TransferController{
		previewMatchesUseCase: previewMatchesUseCase,
		autoLinkUseCase:       autoLinkUseCase,
		getReviewQueueUseCase: getReviewQueueUseCase,
		confirmLinkUseCase:    confirmLinkUseCase,
		unlinkUseCase:         unlinkUseCase,
		getSummaryUseCase:     getSummaryUseCase,
	}
}

// PreviewMatches handles GET /transfers/preview requests.
func (c *TransferController) PreviewMatches(ctx *gin.Context) {
	dateRange, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	input := transfer.PreviewMatchesInput{Range: dateRange}
	output, err := c.previewMatchesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	matches := make([]dto.MatchDTO, len(output.Matches))
	for i, m := range output.Matches {
		matches[i] = dto.ToMatchDTO(m)
	}

	unmatched := make([]dto.UnmatchedTransactionDTO, len(output.Unmatched))
	for i, tx := range output.Unmatched {
		unmatched[i] = dto.ToUnmatchedTransactionDTO(tx)
	}

	ctx.JSON(http.StatusOK, dto.PreviewMatchesResponseDTO{
		Matches:   matches,
		Unmatched: unmatched,
	})
}

// AutoLink handles POST /transfers/auto-link requests.
func (c *TransferController) AutoLink(ctx *gin.Context) {
	dateRange, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	input := transfer.AutoLinkInput{Range: dateRange}
	output, err := c.autoLinkUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	linked := make([]dto.MatchDTO, len(output.Linked))
	for i, m := range output.Linked {
		linked[i] = dto.ToMatchDTO(m)
	}

	ctx.JSON(http.StatusOK, dto.AutoLinkResponseDTO{
		Linked:         linked,
		LinkedCount:    output.LinkedCount,
		UnmatchedCount: output.UnmatchedCount,
	})
}

// GetReviewQueue handles GET /transfers/review-queue requests.
func (c *TransferController) GetReviewQueue(ctx *gin.Context) {
	dateRange, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	input := transfer.GetReviewQueueInput{Range: dateRange}
	output, err := c.getReviewQueueUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	suggestions := make([]dto.SuggestionDTO, len(output.Suggestions))
	for i, s := range output.Suggestions {
		suggestions[i] = dto.SuggestionDTO{
			Match:     dto.ToMatchDTO(s.Match),
			Reasoning: s.Reasoning,
		}
	}

	ctx.JSON(http.StatusOK, dto.ReviewQueueResponseDTO{Suggestions: suggestions})
}

// ConfirmLink handles POST /transfers/link requests.
func (c *TransferController) ConfirmLink(ctx *gin.Context) {
	var req dto.ConfirmLinkRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid source ID format",
		})
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target ID format",
		})
		return
	}

	input := transfer.ConfirmLinkInput{
		SourceID: sourceID,
		TargetID: targetID,
		Force:    req.Force,
	}

	output, err := c.confirmLinkUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ConfirmLinkResponseDTO{
		SourceID:         output.SourceID.String(),
		TargetID:         output.TargetID.String(),
		AmountDifference: output.AmountDifference.String(),
		HasMismatch:      output.HasMismatch,
		MatchType:        string(output.MatchType),
	})
}

// Unlink handles POST /transfers/unlink requests.
func (c *TransferController) Unlink(ctx *gin.Context) {
	var req dto.UnlinkRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	input := transfer.UnlinkInput{TransactionID: transactionID}
	output, err := c.unlinkUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UnlinkResponseDTO{
		TransactionID: output.TransactionID.String(),
		Success:       output.Success,
	})
}

// GetSummary handles GET /transfers/summary requests.
func (c *TransferController) GetSummary(ctx *gin.Context) {
	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransferSummaryResponseDTO{
		LinkedPairs:   output.LinkedPairs,
		Unlinked:      output.Unlinked,
		TotalEligible: output.TotalEligible,
	})
}

// parseDateRange parses the optional start_date and end_date query parameters.
// It writes the error response itself and reports false on invalid input.
func parseDateRange(ctx *gin.Context) (transfer.DateRangeInput, bool) {
	var dateRange transfer.DateRangeInput

	if startStr := ctx.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
			})
			return dateRange, false
		}
		dateRange.StartDate = &start
	}
	if endStr := ctx.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return dateRange, false
		}
		dateRange.EndDate = &end
	}

	return dateRange, true
}

// handleTransferError handles transfer errors and returns appropriate HTTP responses.
func (c *TransferController) handleTransferError(ctx *gin.Context, err error) {
	var trfErr *domainerror.TransferError
	if errors.As(err, &trfErr) {
		statusCode := c.getStatusCodeForTransferError(trfErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: trfErr.Message,
			Code:  string(trfErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransferError maps error codes to HTTP status codes.
func (c *TransferController) getStatusCodeForTransferError(code domainerror.TransferErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransferLegNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidMatchingWindow,
		domainerror.ErrCodeInvalidTolerance,
		domainerror.ErrCodeInvalidConfidenceFloor,
		domainerror.ErrCodeInvalidConfidenceWeights,
		domainerror.ErrCodeSameAccount,
		domainerror.ErrCodeSameSign,
		domainerror.ErrCodeAmountOutsideTolerance:
		return http.StatusBadRequest
	case domainerror.ErrCodeAlreadyLinked,
		domainerror.ErrCodeNotLinked,
		domainerror.ErrCodeReconciliationInFlight:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
