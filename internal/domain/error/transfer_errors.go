// Package error defines domain-specific errors for the LedgerLink application.
package error

import "errors"

// Transfer reconciliation domain errors.
var (
	// ErrInvalidMatchingWindow is returned when the matching window is negative.
	ErrInvalidMatchingWindow = errors.New("invalid matching window")

	// ErrInvalidTolerance is returned when the tolerance percentage is not positive.
	ErrInvalidTolerance = errors.New("invalid tolerance percentage")

	// ErrInvalidConfidenceFloor is returned when the auto-match confidence floor is outside [0,1].
	ErrInvalidConfidenceFloor = errors.New("invalid confidence floor")

	// ErrInvalidConfidenceWeights is returned when the confidence weights are inconsistent.
	ErrInvalidConfidenceWeights = errors.New("invalid confidence weights")

	// ErrTransferLegNotFound is returned when one of the two records to link does not exist.
	ErrTransferLegNotFound = errors.New("transfer leg not found")

	// ErrAlreadyLinked is returned when a record is already claimed by another transfer.
	ErrAlreadyLinked = errors.New("transaction already linked")

	// ErrNotLinked is returned when unlinking a record that has no link.
	ErrNotLinked = errors.New("transaction is not linked")

	// ErrSameAccount is returned when both legs belong to the same account.
	ErrSameAccount = errors.New("transfer legs share the same account")

	// ErrSameSign is returned when both legs have the same cash-flow direction.
	ErrSameSign = errors.New("transfer legs have the same sign")

	// ErrAmountOutsideTolerance is returned when the amount difference exceeds
	// the review tolerance and the link is not forced.
	ErrAmountOutsideTolerance = errors.New("amount difference exceeds tolerance")

	// ErrReconciliationInProgress is returned when another automatic run holds the ledger lock.
	ErrReconciliationInProgress = errors.New("reconciliation already in progress")
)

// TransferErrorCode defines error codes for transfer reconciliation errors.
// Format: TRF-XXYYYY where XX is category and YYYY is specific error.
type TransferErrorCode string

const (
	// Configuration errors (01XXXX)
	ErrCodeInvalidMatchingWindow    TransferErrorCode = "TRF-010001"
	ErrCodeInvalidTolerance         TransferErrorCode = "TRF-010002"
	ErrCodeInvalidConfidenceFloor   TransferErrorCode = "TRF-010003"
	ErrCodeInvalidConfidenceWeights TransferErrorCode = "TRF-010004"

	// Linking errors (02XXXX)
	ErrCodeTransferLegNotFound     TransferErrorCode = "TRF-020001"
	ErrCodeAlreadyLinked           TransferErrorCode = "TRF-020002"
	ErrCodeNotLinked               TransferErrorCode = "TRF-020003"
	ErrCodeSameAccount             TransferErrorCode = "TRF-020004"
	ErrCodeSameSign                TransferErrorCode = "TRF-020005"
	ErrCodeAmountOutsideTolerance  TransferErrorCode = "TRF-020006"
	ErrCodeReconciliationInFlight  TransferErrorCode = "TRF-020007"
	ErrCodeTooManyRequests         TransferErrorCode = "TRF-020008"
)

// TransferError represents a transfer reconciliation error with code and message.
type TransferError struct {
	Code    TransferErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// NewTransferError creates a new TransferError with the given code and message.
func NewTransferError(code TransferErrorCode, message string, err error) *TransferError {
	return &TransferError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
