package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finledger/finledger/internal/models"
)

// execer covers both *sql.DB and *sql.Tx so statement inserts can run
// standalone or inside the pair transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertStatement(ctx context.Context, e execer, st *models.Statement) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO statements (id, user_id, amount, description, type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.UserID, st.Amount.String(), st.Description, string(st.Type),
		st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}
	return nil
}

// CreateStatement persists a single ledger entry.
func (s *SQLiteStore) CreateStatement(ctx context.Context, statement *models.Statement) error {
	return insertStatement(ctx, s.db, statement)
}

// CreateStatementPair persists both sides of a transfer in one transaction.
// Either both rows become visible or neither does.
func (s *SQLiteStore) CreateStatementPair(ctx context.Context, sent, received *models.Statement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertStatement(ctx, tx, sent); err != nil {
		return err
	}
	if err := insertStatement(ctx, tx, received); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetStatement retrieves a statement by ID.
func (s *SQLiteStore) GetStatement(ctx context.Context, id string) (*models.Statement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, description, type, created_at, updated_at
		 FROM statements WHERE id = ?`,
		id,
	)

	st, err := scanStatement(row)
	if err == sql.ErrNoRows {
		return nil, nil // Statement not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}

	return st, nil
}

// ListStatementsByUser retrieves all statements owned by the user in
// insertion order, oldest first. rowid preserves insertion order even when
// several statements share a created_at second.
func (s *SQLiteStore) ListStatementsByUser(ctx context.Context, userID string) ([]*models.Statement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount, description, type, created_at, updated_at
		 FROM statements WHERE user_id = ? ORDER BY rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	var statements []*models.Statement
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statements: %w", err)
	}

	return statements, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStatement(row scanner) (*models.Statement, error) {
	st := &models.Statement{}
	var amount, typ string

	if err := row.Scan(&st.ID, &st.UserID, &amount, &st.Description, &typ,
		&st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	st.Amount = value

	st.Type = models.OperationType(typ)
	if !st.Type.Valid() {
		return nil, fmt.Errorf("corrupt statement type %q", typ)
	}

	return st, nil
}
