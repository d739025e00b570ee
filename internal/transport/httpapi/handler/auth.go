package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nmantri/spendwise/internal/platform/user"
	"github.com/nmantri/spendwise/pkg/logger"
)

// Authenticator defines the credential check needed by AuthHandler.
type Authenticator interface {
	Authenticate(username, password string) (user.Credential, error)
}

// TokenIssuer defines the token operations needed by AuthHandler.
type TokenIssuer interface {
	GenerateToken(username string) (string, error)
}

// UserInitializer creates a user's data files on first login.
type UserInitializer interface {
	Init(ctx context.Context, username string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	registry Authenticator
	tokens   TokenIssuer
	inits    []UserInitializer
	log      *logger.Logger
}

// NewAuthHandler creates a new auth handler. Each initializer is run after
// a successful login to make sure the user's files exist.
func NewAuthHandler(registry Authenticator, tokens TokenIssuer, log *logger.Logger, inits ...UserInitializer) *AuthHandler {
	return &AuthHandler{
		registry: registry,
		tokens:   tokens,
		inits:    inits,
		log:      log,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo represents user information (without sensitive data)
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Login handles user login (POST /auth/login)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	cred, err := h.registry.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondError(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		respondError(w, "failed to login", http.StatusInternalServerError)
		return
	}

	// First login creates the user's ledger and settings files.
	for _, init := range h.inits {
		if err := init.Init(r.Context(), cred.Username); err != nil {
			h.log.WithContext(r.Context()).WithError(err).Error("initializing user data failed",
				"username", cred.Username)
			respondError(w, "failed to initialize user data", http.StatusInternalServerError)
			return
		}
	}

	token, err := h.tokens.GenerateToken(cred.Username)
	if err != nil {
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, AuthResponse{
		Token: token,
		User: &UserInfo{
			ID:       cred.ID,
			Username: cred.Username,
		},
	}, http.StatusOK)
}
