package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/validate"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type CompanyHandler struct {
	repo     repository.CompanyRepo
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCompanyHandler(repo repository.CompanyRepo, v *validator.Validate, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{repo: repo, validate: v, logger: logger}
}

// Create handles POST /companies. Admin only.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Company
	if err := decodeBody(w, r, validate.CompanyNew, &c); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.repo.CreateCompany(r.Context(), &c)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"company": created})
}

// List handles GET /companies with optional name, minEmployees and
// maxEmployees filters.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCompanyFilter(h.validate, r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	companies, err := h.repo.FindAllCompanies(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.repo.GetCompany(r.Context(), mux.Vars(r)["handle"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"company": company})
}

// Update handles PATCH /companies/{handle}. The handle itself cannot change.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, err := decodePatch(w, r, validate.CompanyUpdate)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	company, err := h.repo.UpdateCompany(r.Context(), mux.Vars(r)["handle"], data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]
	if err := h.repo.RemoveCompany(r.Context(), handle); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": handle})
}
