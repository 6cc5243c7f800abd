// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ekurt/newspulse/internal/external/gemini"
	"github.com/ekurt/newspulse/internal/history"
	"github.com/ekurt/newspulse/internal/pool"
	"github.com/ekurt/newspulse/internal/realtime"
	"github.com/ekurt/newspulse/internal/scanner"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Handler bundles the API endpoint dependencies
// SSOT: API handlers live in this package
type Handler struct {
	repo     *pool.Repository
	poolMgr  *pool.Manager
	scanner  *scanner.Scanner
	measurer *scanner.Measurer
	gemini   *gemini.Client      // optional
	history  *history.Repository // optional
	hub      *realtime.Hub       // optional
	logger   *logger.Logger
}

// New creates the API handler. gemini, history, and hub may be nil.
func New(
	repo *pool.Repository,
	poolMgr *pool.Manager,
	scan *scanner.Scanner,
	measure *scanner.Measurer,
	gem *gemini.Client,
	hist *history.Repository,
	hub *realtime.Hub,
	log *logger.Logger,
) *Handler {
	return &Handler{
		repo:     repo,
		poolMgr:  poolMgr,
		scanner:  scan,
		measurer: measure,
		gemini:   gem,
		history:  hist,
		hub:      hub,
		logger:   log.WithField("module", "api"),
	}
}

// respondJSON writes a success envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondError writes an error envelope
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
