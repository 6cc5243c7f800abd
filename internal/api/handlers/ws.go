package handlers

import "net/http"

// ServeWS upgrades to a websocket subscription on the leaderboard
// stream.
// GET /ws
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "Live stream is not configured")
		return
	}
	h.hub.ServeWS(w, r)
}
