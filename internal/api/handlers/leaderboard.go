package handlers

import (
	"net/http"
	"strconv"
	"time"
)

// GetLeaderboard returns the ranked view.
// GET /api/leaderboard?min=SCORE&limit=N
// Serves the persisted view when present, otherwise derives it from the
// pool on the fly so a cold start never 404s.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, found, err := h.repo.LoadLeaderboard(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load leaderboard")
		respondError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	if !found {
		p, err := h.repo.LoadPool(ctx)
		if err != nil {
			h.logger.WithError(err).Error("Failed to load pool")
			respondError(w, http.StatusInternalServerError, "Failed to load pool")
			return
		}
		view = h.poolMgr.ReduceLeaderboard(p.Items, time.Now().UTC())
	}

	items := view.Items
	if minStr := r.URL.Query().Get("min"); minStr != "" {
		if min, err := strconv.Atoi(minStr); err == nil {
			// Items are sorted by score descending
			cut := len(items)
			for i, rec := range items {
				if rec.Score < min {
					cut = i
					break
				}
			}
			items = items[:cut]
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(items) {
			items = items[:limit]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"asOf":  view.AsOf,
		"count": len(items),
		"items": items,
	})
}
