package http

import (
	"context"
	"net/http"
)

// AuthService defines the account operations required by AuthHandler.
type AuthService interface {
	// Register creates an account and returns its id.
	Register(ctx context.Context, username, password string) (int64, error)
	// Verify checks credentials and returns the matching user id.
	Verify(ctx context.Context, username, password string) (int64, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	AuthService AuthService
}

// CredentialsRequest is the JSON payload for registration and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// Register handles POST /register and responds 201 with the new user id.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Message: "Registration successful", UserID: id})
}

// Login handles POST /login. The user id is returned only when the
// credentials match; any mismatch yields 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.AuthService.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", UserID: id})
}
