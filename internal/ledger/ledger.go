// Package ledger implements the balance invariant engine: statement
// creation, balance derivation, and the insufficient-funds check, enforced
// consistently across single-party and two-party operations.
//
// The invariant: a user's balance is the signed sum of their statement
// history (+deposit +received_transfer -withdraw -sent_transfer) and never
// goes negative as the observed post-state of a committed operation. Balance
// check and statement append run inside a per-user exclusion scope, so two
// racing withdrawals cannot both pass the check against the same stale
// balance.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/storage"
)

// DefaultLockWait bounds how long an operation waits for an account's
// exclusion scope before giving up with ErrBusy.
const DefaultLockWait = 5 * time.Second

// Ledger coordinates the ledger operations over its two collaborators.
// Collaborators are injected at construction; there is no global registry.
type Ledger struct {
	users      storage.UserStore
	statements storage.StatementStore
	locks      *accountLocks
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLockWait overrides DefaultLockWait.
func WithLockWait(d time.Duration) Option {
	return func(l *Ledger) {
		l.locks.waitMax = d
	}
}

// New creates a Ledger over the given user directory and statement store.
func New(users storage.UserStore, statements storage.StatementStore, opts ...Option) *Ledger {
	l := &Ledger{
		users:      users,
		statements: statements,
		locks:      newAccountLocks(DefaultLockWait),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) resolveUser(ctx context.Context, userID string, missing error) (*models.User, error) {
	user, err := l.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	if user == nil {
		return nil, missing
	}
	return user, nil
}

// Deposit appends a deposit statement for the user. Deposits only grow the
// balance, so no funds check and no exclusion scope are needed.
func (l *Ledger) Deposit(ctx context.Context, userID string, amount decimal.Decimal, description string) (*models.Statement, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := l.resolveUser(ctx, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	st := models.NewStatement(userID, models.OperationDeposit, amount, description)
	if err := l.statements.CreateStatement(ctx, st); err != nil {
		return nil, storageErr(err)
	}
	return st, nil
}

// Withdraw appends a withdraw statement, rejecting with ErrInsufficientFunds
// when the amount exceeds the current balance. The balance read and the
// append happen under the user's exclusion scope.
func (l *Ledger) Withdraw(ctx context.Context, userID string, amount decimal.Decimal, description string) (*models.Statement, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := l.resolveUser(ctx, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	release, err := l.locks.acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	balance, err := l.balanceOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance) {
		return nil, ErrInsufficientFunds
	}

	st := models.NewStatement(userID, models.OperationWithdraw, amount, description)
	if err := l.statements.CreateStatement(ctx, st); err != nil {
		return nil, storageErr(err)
	}
	return st, nil
}

// Transfer moves amount from sender to receiver by appending a
// sent_transfer/received_transfer pair atomically. Both parties' exclusion
// scopes are held across the sender's funds check and the pair append.
// Returns the sender's statement; the receiver's side is independently
// queryable afterwards.
func (l *Ledger) Transfer(ctx context.Context, senderID, receiverID string, amount decimal.Decimal, description string) (*models.Statement, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSelfTransfer
	}
	if _, err := l.resolveUser(ctx, senderID, ErrUserNotFound); err != nil {
		return nil, err
	}
	if _, err := l.resolveUser(ctx, receiverID, ErrReceiverNotFound); err != nil {
		return nil, err
	}

	release, err := l.locks.acquirePair(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	defer release()

	balance, err := l.balanceOf(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance) {
		return nil, ErrInsufficientFunds
	}

	sent := models.NewStatement(senderID, models.OperationSentTransfer, amount, description)
	received := models.NewStatement(receiverID, models.OperationReceivedTransfer, amount, description)
	if err := l.statements.CreateStatementPair(ctx, sent, received); err != nil {
		return nil, storageErr(err)
	}
	return sent, nil
}

// GetStatement retrieves one statement scoped to its owner. A statement
// owned by someone else reports ErrStatementNotFound, same as a missing id.
func (l *Ledger) GetStatement(ctx context.Context, userID, statementID string) (*models.Statement, error) {
	if _, err := l.resolveUser(ctx, userID, ErrUserNotFound); err != nil {
		return nil, err
	}

	st, err := l.statements.GetStatement(ctx, statementID)
	if err != nil {
		return nil, storageErr(err)
	}
	if st == nil || st.UserID != userID {
		return nil, ErrStatementNotFound
	}
	return st, nil
}

// Balance returns the user's current balance together with the statement
// history it was derived from. Pure read: no exclusion scope is taken.
func (l *Ledger) Balance(ctx context.Context, userID string) (decimal.Decimal, []*models.Statement, error) {
	if _, err := l.resolveUser(ctx, userID, ErrUserNotFound); err != nil {
		return decimal.Zero, nil, err
	}

	statements, err := l.statements.ListStatementsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, nil, storageErr(err)
	}
	return foldBalance(statements), statements, nil
}
