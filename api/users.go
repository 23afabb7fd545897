package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/validate"
	"github.com/garnizeh/jobly/pkg/repository"
)

type UserHandler struct {
	users  repository.UserRepo
	tokens TokenIssuer
	logger *slog.Logger
}

func NewUserHandler(users repository.UserRepo, tokens TokenIssuer, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, logger: logger}
}

// Create handles POST /users. Admin only; unlike registration it may create
// other admins.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var u userRequest
	if err := decodeBody(w, r, validate.UserNew, &u); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.users.Register(r.Context(), u.toModel(true))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.tokens.NewToken(created.Username, created.IsAdmin)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": created, "token": token})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
