package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// GetHistory returns archived measured records from PostgreSQL.
// GET /api/history?symbol=AAPL&limit=N
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "History archive is not configured")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil {
			limit = n
		}
	}

	records, err := h.history.ListRecent(r.Context(), symbol, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list history")
		respondError(w, http.StatusInternalServerError, "Failed to list history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(records),
		"items": records,
	})
}
