// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input provided")
	ErrSameWalletTransfer     = errors.New("cannot transfer to the same wallet")
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrItemNotFound           = errors.New("item not found")
	ErrClientNotFound         = errors.New("client not found")
	ErrCategoryRequired       = errors.New("category is required for this transaction type")
	ErrBalanceImmutable       = errors.New("wallet balance cannot be edited directly")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// PartialFailure reports that a multi-step operation failed after one or more
// earlier steps had already committed. Committed names the side effect that did
// happen, so callers can tell the user which part of the state moved before the
// failure. The wrapped error is the failure of the later step.
type PartialFailure struct {
	Committed string
	Err       error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("operation failed after %s: %v", e.Committed, e.Err)
}

func (e *PartialFailure) Unwrap() error { return e.Err }

// IsError checks whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
