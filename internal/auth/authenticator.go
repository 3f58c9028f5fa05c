// Package auth provides registration, credential verification, and JWT
// session tokens for the ledger API.
package auth

import (
	"context"

	"github.com/finledger/finledger/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The abstraction keeps the API layer independent of the credential scheme
// (password today; passkeys or OAuth would slot in here).
type Authenticator interface {
	// Register creates a new user account with the given credential.
	Register(ctx context.Context, name, email, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's
	// requirements before any storage work happens.
	ValidateCredential(credential string) error
}
