package api

import (
	"log/slog"
	"net/http"

	"github.com/garnizeh/jobly/internal/validate"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type AuthHandler struct {
	users  repository.UserRepo
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(users repository.UserRepo, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token handles POST /auth/token: exchanges credentials for a token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeBody(w, r, validate.UserAuth, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.tokens.NewToken(user.Username, user.IsAdmin)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Register handles POST /auth/register. Self-registered users are never
// admins.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var u userRequest
	if err := decodeBody(w, r, validate.UserRegister, &u); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.users.Register(r.Context(), u.toModel(false))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.tokens.NewToken(created.Username, created.IsAdmin)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

type userRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (u userRequest) toModel(allowAdmin bool) *models.User {
	return &models.User{
		Username:  u.Username,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   allowAdmin && u.IsAdmin,
	}
}
