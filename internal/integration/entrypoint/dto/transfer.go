// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/ledgerlink/backend/internal/application/usecase/transfer"
	"github.com/ledgerlink/backend/internal/domain/entity"
)

// MatchDTO represents one matched or suggested transfer pair.
type MatchDTO struct {
	SourceID             string  `json:"source_id"`
	TargetID             string  `json:"target_id"`
	DateDifference       int     `json:"date_difference_days"`
	AmountDifference     string  `json:"amount_difference"`
	PercentageDifference string  `json:"percentage_difference"`
	Confidence           float64 `json:"confidence"`
	MatchType            string  `json:"match_type"`
}

// UnmatchedTransactionDTO represents a record the engine could not pair.
type UnmatchedTransactionDTO struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// PreviewMatchesResponseDTO represents the response for GET /transfers/preview.
type PreviewMatchesResponseDTO struct {
	Matches   []MatchDTO                `json:"matches"`
	Unmatched []UnmatchedTransactionDTO `json:"unmatched"`
}

// AutoLinkResponseDTO represents the response for POST /transfers/auto-link.
type AutoLinkResponseDTO struct {
	Linked         []MatchDTO `json:"linked"`
	LinkedCount    int        `json:"linked_count"`
	UnmatchedCount int        `json:"unmatched_count"`
}

// SuggestionDTO represents one ranked suggestion in the review queue.
type SuggestionDTO struct {
	Match     MatchDTO `json:"match"`
	Reasoning string   `json:"reasoning"`
}

// ReviewQueueResponseDTO represents the response for GET /transfers/review-queue.
type ReviewQueueResponseDTO struct {
	Suggestions []SuggestionDTO `json:"suggestions"`
}

// ConfirmLinkRequestDTO represents the request for POST /transfers/link.
type ConfirmLinkRequestDTO struct {
	SourceID string `json:"source_id" binding:"required"`
	TargetID string `json:"target_id" binding:"required"`
	Force    bool   `json:"force"`
}

// ConfirmLinkResponseDTO represents the response for POST /transfers/link.
type ConfirmLinkResponseDTO struct {
	SourceID         string `json:"source_id"`
	TargetID         string `json:"target_id"`
	AmountDifference string `json:"amount_difference"`
	HasMismatch      bool   `json:"has_mismatch"`
	MatchType        string `json:"match_type"`
}

// UnlinkRequestDTO represents the request for POST /transfers/unlink.
type UnlinkRequestDTO struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// UnlinkResponseDTO represents the response for POST /transfers/unlink.
type UnlinkResponseDTO struct {
	TransactionID string `json:"transaction_id"`
	Success       bool   `json:"success"`
}

// TransferSummaryResponseDTO represents the response for GET /transfers/summary.
type TransferSummaryResponseDTO struct {
	LinkedPairs   int `json:"linked_pairs"`
	Unlinked      int `json:"unlinked"`
	TotalEligible int `json:"total_eligible"`
}

// ToMatchDTO converts a use case match output to its DTO.
func ToMatchDTO(m transfer.MatchOutput) MatchDTO {
	return MatchDTO{
		SourceID:             m.SourceID.String(),
		TargetID:             m.TargetID.String(),
		DateDifference:       m.DateDifference,
		AmountDifference:     m.AmountDifference.String(),
		PercentageDifference: m.PercentageDifference.StringFixed(4),
		Confidence:           m.Confidence,
		MatchType:            string(m.MatchType),
	}
}

// ToUnmatchedTransactionDTO converts an unmatched transaction to its DTO.
func ToUnmatchedTransactionDTO(tx *entity.Transaction) UnmatchedTransactionDTO {
	return UnmatchedTransactionDTO{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Date:        tx.Date.Format("2006-01-02"),
		Description: tx.Description,
		Amount:      tx.Amount.String(),
	}
}
