package handlers

import (
	"net/http"
	"strconv"
	"time"
)

const defaultCommentCount = 5

// GetComments returns generated analyst comments for the top
// leaderboard entries.
// GET /api/comments?limit=N
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	if h.gemini == nil || !h.gemini.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "Comment generation is not configured")
		return
	}

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

	limit := defaultCommentCount
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n < limit {
			limit = n
		}
	}
	items := view.Items
	if len(items) > limit {
		items = items[:limit]
	}

	comments, err := h.gemini.Comments(ctx, items)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate comments")
		respondError(w, http.StatusBadGateway, "Comment generation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(comments),
		"comments": comments,
	})
}
