// Package api exposes the ledger over a JSON REST surface. Handlers decode
// requests, call into the ledger or auth collaborators, and map typed
// failures to status codes; no business rules live here.
package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/ledger"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/storage"
)

// Server holds the collaborators for the HTTP handlers.
type Server struct {
	ledger        *ledger.Ledger
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewServer creates an API server over the given collaborators.
func NewServer(l *ledger.Ledger, authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		ledger:        l,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Routes builds the route table. Statement routes require a valid session
// token; user creation and login do not.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/users", s.handleCreateUser)
	mux.HandleFunc("POST /api/v1/sessions", s.handleCreateSession)

	authed := middleware.RequireAuth(s.jwtManager)
	mux.Handle("GET /api/v1/profile", authed(http.HandlerFunc(s.handleProfile)))
	mux.Handle("GET /api/v1/statements/balance", authed(http.HandlerFunc(s.handleBalance)))
	mux.Handle("POST /api/v1/statements/deposit", authed(http.HandlerFunc(s.handleDeposit)))
	mux.Handle("POST /api/v1/statements/withdraw", authed(http.HandlerFunc(s.handleWithdraw)))
	mux.Handle("GET /api/v1/statements/{statement_id}", authed(http.HandlerFunc(s.handleGetStatement)))
	mux.Handle("POST /api/v1/statements/transfers/{user_id}", authed(http.HandlerFunc(s.handleTransfer)))

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
