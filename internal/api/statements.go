package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/finledger/finledger/internal/middleware"
)

// statementRequest carries the body of deposit, withdraw, and transfer
// operations. Amount accepts both JSON numbers and quoted decimal strings.
type statementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func decodeStatementRequest(r *http.Request) (statementRequest, error) {
	var req statementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.New("invalid request body")
	}
	return req, nil
}

// handleDeposit appends a deposit to the caller's ledger.
// POST /api/v1/statements/deposit
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStatementRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	userID := middleware.GetUserID(r.Context())

	st, err := s.ledger.Deposit(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	s.logger.Info("Deposit committed", "user_id", userID, "statement_id", st.ID, "amount", st.Amount.String())
	s.writeJSON(w, http.StatusCreated, toStatementResponse(st))
}

// handleWithdraw appends a withdrawal, subject to the funds check.
// POST /api/v1/statements/withdraw
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStatementRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	userID := middleware.GetUserID(r.Context())

	st, err := s.ledger.Withdraw(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	s.logger.Info("Withdrawal committed", "user_id", userID, "statement_id", st.ID, "amount", st.Amount.String())
	s.writeJSON(w, http.StatusCreated, toStatementResponse(st))
}

// handleTransfer moves funds from the caller to the user in the path.
// POST /api/v1/statements/transfers/{user_id}
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStatementRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	senderID := middleware.GetUserID(r.Context())
	receiverID := r.PathValue("user_id")

	st, err := s.ledger.Transfer(r.Context(), senderID, receiverID, req.Amount, req.Description)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	s.logger.Info("Transfer committed",
		"sender_id", senderID,
		"receiver_id", receiverID,
		"statement_id", st.ID,
		"amount", st.Amount.String(),
	)
	s.writeJSON(w, http.StatusCreated, toTransferResponse(st))
}

// handleGetStatement returns one of the caller's statements by id.
// GET /api/v1/statements/{statement_id}
func (s *Server) handleGetStatement(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	statementID := r.PathValue("statement_id")

	st, err := s.ledger.GetStatement(r.Context(), userID, statementID)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toStatementResponse(st))
}

// handleBalance returns the caller's history and derived balance.
// GET /api/v1/statements/balance
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	balance, statements, err := s.ledger.Balance(r.Context(), userID)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	resp := balanceResponse{
		Statement: make([]statementResponse, 0, len(statements)),
		Balance:   balance.String(),
	}
	for _, st := range statements {
		item := toStatementResponse(st)
		item.UserID = "" // owner is implicit in a balance listing
		resp.Statement = append(resp.Statement, item)
	}

	s.writeJSON(w, http.StatusOK, resp)
}
