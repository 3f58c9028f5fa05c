package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/ledger"
	"github.com/finledger/finledger/internal/models"
)

// userResponse is the public view of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// statementResponse is the public view of a ledger entry. Amounts are
// decimal strings, never binary floats.
type statementResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	SenderID    string `json:"sender_id,omitempty"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type balanceResponse struct {
	Statement []statementResponse `json:"statement"`
	Balance   string              `json:"balance"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func toStatementResponse(st *models.Statement) statementResponse {
	return statementResponse{
		ID:          st.ID,
		UserID:      st.UserID,
		Amount:      st.Amount.String(),
		Description: st.Description,
		Type:        string(st.Type),
		CreatedAt:   formatTime(st.CreatedAt),
		UpdatedAt:   formatTime(st.UpdatedAt),
	}
}

// toTransferResponse renders the sender's side of a transfer pair: the
// owner appears as sender_id.
func toTransferResponse(st *models.Statement) statementResponse {
	resp := toStatementResponse(st)
	resp.UserID = ""
	resp.SenderID = st.UserID
	return resp
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Message: err.Error()})
}

// writeLedgerError maps the ledger's failure taxonomy onto status codes.
func (s *Server) writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrUserNotFound),
		errors.Is(err, ledger.ErrReceiverNotFound),
		errors.Is(err, ledger.ErrStatementNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrSelfTransfer):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ledger.ErrBusy):
		s.writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.logger.Error("Ledger operation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

// writeAuthError maps registration/login failures onto status codes.
func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, auth.ErrWeakPassword):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, err)
	default:
		s.logger.Error("Auth operation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
