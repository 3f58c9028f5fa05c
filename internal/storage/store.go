// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/finledger/finledger/internal/models"
)

// UserStore defines the interface for user persistence operations.
type UserStore interface {
	// CreateUser persists a new user. Fails if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id.
	// Returns (nil, nil) when the id does not resolve.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// StatementStore defines the interface for ledger entry persistence.
// Statements are append-only: there are no update or delete operations.
type StatementStore interface {
	// CreateStatement persists a single statement.
	CreateStatement(ctx context.Context, statement *models.Statement) error

	// CreateStatementPair persists both sides of a transfer as one atomic
	// unit: no reader ever observes exactly one of the two rows.
	CreateStatementPair(ctx context.Context, sent, received *models.Statement) error

	// GetStatement retrieves a statement by id.
	// Returns (nil, nil) when the id does not resolve.
	GetStatement(ctx context.Context, id string) (*models.Statement, error)

	// ListStatementsByUser returns every statement owned by the user in
	// insertion order, oldest first.
	ListStatementsByUser(ctx context.Context, userID string) ([]*models.Statement, error)
}

// Store combines user and statement persistence. This abstraction allows
// swapping storage backends (SQLite, PostgreSQL, etc.) without changing the
// ledger or API layers.
type Store interface {
	UserStore
	StatementStore

	// Close releases any resources held by the store.
	Close() error
}
