package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType tags a statement with the direction of the money movement.
type OperationType string

const (
	OperationDeposit          OperationType = "deposit"
	OperationWithdraw         OperationType = "withdraw"
	OperationSentTransfer     OperationType = "sent_transfer"
	OperationReceivedTransfer OperationType = "received_transfer"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationDeposit, OperationWithdraw, OperationSentTransfer, OperationReceivedTransfer:
		return true
	}
	return false
}

// Credits reports whether the operation adds to the owner's balance.
func (t OperationType) Credits() bool {
	return t == OperationDeposit || t == OperationReceivedTransfer
}

// Statement is an immutable ledger entry: one money movement for one user.
// A transfer produces two statements, sent_transfer on the payer and
// received_transfer on the payee, sharing amount and description but with
// distinct ids.
type Statement struct {
	// ID is the unique identifier for the statement (UUID format).
	ID string

	// UserID is the owner of this ledger entry.
	UserID string

	// Amount is the statement value. Always strictly positive; the Type
	// carries the sign of the movement.
	Amount decimal.Decimal

	// Description is the free-text label supplied by the caller.
	Description string

	// Type is the kind of movement this entry records.
	Type OperationType

	// CreatedAt is the Unix timestamp when the statement was committed.
	CreatedAt int64

	// UpdatedAt mirrors CreatedAt. Statements are append-only and never
	// mutated; the column exists for schema symmetry with users.
	UpdatedAt int64
}

// NewStatement builds a statement with a fresh UUID and current timestamps.
func NewStatement(userID string, typ OperationType, amount decimal.Decimal, description string) *Statement {
	now := time.Now().Unix()
	return &Statement{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Type:        typ,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
