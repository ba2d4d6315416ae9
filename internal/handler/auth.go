package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rusba/rusba-api/internal/service"
)

// AuthHandler serves the admin login endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// loginRequest is the login body. A separate request struct (rather than
// decoding into model.User) keeps the wire format and the storage model
// independent — the request carries a plaintext password, the model a hash.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// HandleLogin processes POST /auth/login.
//
// Responses: 200 {"token": ...} on success, 401 "Invalid credentials" for any
// bad username/password combination, 500 with a generic message otherwise.
// The login rate limiter runs before this handler ever sees the request.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid JSON body"})
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
