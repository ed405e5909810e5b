package handlers

import (
	"net/http"
	"strconv"

	"scamtrap-lab/internal/infrastructure/database/repository"
	"scamtrap-lab/pkg/logger"
)

// IntelHandler exposes the collected intelligence log for operators.
type IntelHandler struct {
	repo   repository.IntelRepository
	logger *logger.Logger
}

func NewIntelHandler(repo repository.IntelRepository, log *logger.Logger) *IntelHandler {
	return &IntelHandler{
		repo:   repo,
		logger: log.WithComponent("intel"),
	}
}

// List handles GET /api/intel, newest rows first. Accepts ?limit=N.
func (h *IntelHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "error",
			"error":   "PERSISTENCE_UNAVAILABLE",
			"message": "intelligence log is not configured",
		})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list intel records")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":  "error",
			"error":   "INTERNAL_SERVER_ERROR",
			"message": "failed to read intelligence log",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"count":   len(records),
		"records": records,
	})
}
