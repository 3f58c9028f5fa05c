package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finledger/finledger/internal/models"
)

// foldBalance computes the signed sum over a statement history:
// deposits and received transfers add, withdrawals and sent transfers
// subtract. Pure function of its input.
func foldBalance(statements []*models.Statement) decimal.Decimal {
	balance := decimal.Zero
	for _, st := range statements {
		if st.Type.Credits() {
			balance = balance.Add(st.Amount)
		} else {
			balance = balance.Sub(st.Amount)
		}
	}
	return balance
}

// balanceOf reads the user's history and folds it. Callers that feed the
// result into a funds check must hold the user's exclusion scope so the
// snapshot cannot interleave with a concurrent append.
func (l *Ledger) balanceOf(ctx context.Context, userID string) (decimal.Decimal, error) {
	statements, err := l.statements.ListStatementsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, storageErr(err)
	}
	return foldBalance(statements), nil
}
