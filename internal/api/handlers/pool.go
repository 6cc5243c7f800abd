package handlers

import (
	"net/http"
	"strings"

	"github.com/ekurt/newspulse/internal/contracts"
)

// GetPool returns the raw working set, optionally filtered.
// GET /api/pool?symbol=AAPL&state=provisional|measured
func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.repo.LoadPool(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load pool")
		respondError(w, http.StatusInternalServerError, "Failed to load pool")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	state := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("state")))
	if state != "" && state != "provisional" && state != "measured" {
		respondError(w, http.StatusBadRequest, "state must be provisional or measured")
		return
	}

	items := make([]*contracts.ImpactRecord, 0, len(p.Items))
	for _, rec := range p.Items {
		if symbol != "" && rec.Symbol != symbol {
			continue
		}
		if state != "" && rec.State().String() != state {
			continue
		}
		items = append(items, rec)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"asOf":  p.AsOf,
		"count": len(items),
		"items": items,
	})
}
