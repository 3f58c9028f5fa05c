package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("Alice", "alice@example.com", "bcrypt-hash")
	require.NoError(t, store.CreateUser(ctx, user))

	t.Run("by id", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.Name, got.Name)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
		assert.Equal(t, user.CreatedAt, got.CreatedAt)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("miss returns nil, nil", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.GetUserByEmail(ctx, "missing@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser("Other Alice", "alice@example.com", "other-hash")
		assert.Error(t, store.CreateUser(ctx, dup))
	})
}

func TestStatementRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("Alice", "alice@example.com", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	st := models.NewStatement(user.ID, models.OperationDeposit, decimal.RequireFromString("15.29"), "salary")
	require.NoError(t, store.CreateStatement(ctx, st))

	got, err := store.GetStatement(ctx, st.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, st.UserID, got.UserID)
	assert.Equal(t, models.OperationDeposit, got.Type)
	assert.Equal(t, "salary", got.Description)
	// Decimal survives the TEXT column exactly.
	assert.Equal(t, "15.29", got.Amount.String())

	missing, err := store.GetStatement(ctx, "never-created")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListStatementsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("Alice", "alice@example.com", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	descriptions := []string{"first", "second", "third"}
	for _, d := range descriptions {
		st := models.NewStatement(user.ID, models.OperationDeposit, decimal.NewFromInt(1), d)
		require.NoError(t, store.CreateStatement(ctx, st))
	}

	statements, err := store.ListStatementsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, statements, 3)
	for i, d := range descriptions {
		assert.Equal(t, d, statements[i].Description)
	}

	// Listing is restartable: a second pass sees the same sequence.
	again, err := store.ListStatementsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, again, 3)
	for i := range statements {
		assert.Equal(t, statements[i].ID, again[i].ID)
	}
}

func TestCreateStatementPair(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("Alice", "alice@example.com", "hash")
	bob := models.NewUser("Bob", "bob@example.com", "hash")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	amount := decimal.RequireFromString("5.29")
	sent := models.NewStatement(alice.ID, models.OperationSentTransfer, amount, "lunch")
	received := models.NewStatement(bob.ID, models.OperationReceivedTransfer, amount, "lunch")

	require.NoError(t, store.CreateStatementPair(ctx, sent, received))

	gotSent, err := store.GetStatement(ctx, sent.ID)
	require.NoError(t, err)
	require.NotNil(t, gotSent)
	assert.Equal(t, models.OperationSentTransfer, gotSent.Type)

	gotReceived, err := store.GetStatement(ctx, received.ID)
	require.NoError(t, err)
	require.NotNil(t, gotReceived)
	assert.Equal(t, models.OperationReceivedTransfer, gotReceived.Type)
}

func TestCreateStatementPairRollsBackOnConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("Alice", "alice@example.com", "hash")
	bob := models.NewUser("Bob", "bob@example.com", "hash")
	require.NoError(t, store.CreateUser(ctx, alice))
	require.NoError(t, store.CreateUser(ctx, bob))

	amount := decimal.NewFromInt(5)
	existing := models.NewStatement(bob.ID, models.OperationDeposit, amount, "seed")
	require.NoError(t, store.CreateStatement(ctx, existing))

	// Second insert collides on the primary key, so the whole pair must
	// roll back, including the already-inserted first row.
	sent := models.NewStatement(alice.ID, models.OperationSentTransfer, amount, "lunch")
	received := models.NewStatement(bob.ID, models.OperationReceivedTransfer, amount, "lunch")
	received.ID = existing.ID

	require.Error(t, store.CreateStatementPair(ctx, sent, received))

	gone, err := store.GetStatement(ctx, sent.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "debit side must not survive a failed pair")
}
