package handlers

import (
	"net/http"

	"github.com/ekurt/newspulse/internal/metrics"
)

// GetMetrics returns scoring accuracy statistics over measured records.
// GET /api/metrics
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.LoadPool(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load pool")
		respondError(w, http.StatusInternalServerError, "Failed to load pool")
		return
	}

	respondJSON(w, http.StatusOK, metrics.Compute(p.Items))
}
