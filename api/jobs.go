package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/validate"
	"github.com/garnizeh/jobly/pkg/models"
	"github.com/garnizeh/jobly/pkg/repository"
)

type JobHandler struct {
	repo     repository.JobRepo
	validate *validator.Validate
	logger   *slog.Logger
}

func NewJobHandler(repo repository.JobRepo, v *validator.Validate, logger *slog.Logger) *JobHandler {
	return &JobHandler{repo: repo, validate: v, logger: logger}
}

// jobID reads the {id} path variable. The route pattern only admits digits,
// so the only failure left is overflow.
func jobID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotFound("No job: " + raw)
	}
	return id, nil
}

// Create handles POST /jobs. Admin only.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var j models.Job
	if err := decodeBody(w, r, validate.JobNew, &j); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.repo.CreateJob(r.Context(), &j)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"job": created})
}

// List handles GET /jobs with optional title, minSalary and hasEquity filters.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobFilter(h.validate, r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	jobs, err := h.repo.FindAllJobs(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	job, err := h.repo.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// Update handles PATCH /jobs/{id}. The id and company cannot change.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	data, err := decodePatch(w, r, validate.JobUpdate)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	job, err := h.repo.UpdateJob(r.Context(), id, data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.repo.RemoveJob(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
