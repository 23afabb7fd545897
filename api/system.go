package api

import (
	"context"
	"net/http"
)

type SystemHandler struct {
	version   string
	buildTime string
	ping      func(ctx context.Context) error
}

func NewSystemHandler(version, buildTime string, ping func(ctx context.Context) error) *SystemHandler {
	return &SystemHandler{version: version, buildTime: buildTime, ping: ping}
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "service": "jobly"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "jobly"})
}

func (h *SystemHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.version, "buildTime": h.buildTime})
}
