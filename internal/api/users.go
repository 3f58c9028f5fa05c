package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finledger/finledger/internal/ledger"
	"github.com/finledger/finledger/internal/middleware"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleCreateUser registers a new account.
// POST /api/v1/users
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("name and email are required"))
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Email, "error", err)
		s.writeAuthError(w, err)
		return
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	s.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleCreateSession authenticates a user and issues a session token.
// POST /api/v1/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Email)
		s.writeAuthError(w, err)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	s.writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(user), Token: token})
}

// handleProfile returns the authenticated user's account.
// GET /api/v1/profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to load profile", "user_id", userID, "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if user == nil {
		s.writeLedgerError(w, ledger.ErrUserNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}
