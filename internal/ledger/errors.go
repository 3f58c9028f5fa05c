package ledger

import (
	"errors"
	"fmt"
)

// Every operation either commits fully or returns exactly one of these
// errors with no state change. The API layer maps them to status codes; the
// ledger itself knows nothing about transport.
var (
	// ErrUserNotFound means the acting user id did not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrReceiverNotFound means the transfer payee id did not resolve.
	ErrReceiverNotFound = errors.New("receiver not found")

	// ErrStatementNotFound means the statement id did not resolve, or the
	// statement belongs to a different user. The two cases are deliberately
	// indistinguishable so lookups cannot probe for foreign statements.
	ErrStatementNotFound = errors.New("statement not found")

	// ErrInsufficientFunds means the operation would drive the payer's
	// balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount means the requested amount was zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrSelfTransfer means payer and payee are the same user.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrBusy means the account's exclusion scope could not be acquired
	// within the configured wait. The operation did not run; callers may
	// retry.
	ErrBusy = errors.New("account is busy, retry the operation")

	// ErrStorage wraps persistence failures. Retry policy belongs to the
	// storage layer; the ledger only surfaces them.
	ErrStorage = errors.New("storage failure")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
