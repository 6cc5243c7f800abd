package handlers

import "net/http"

// TriggerScan runs a scan pass synchronously.
// GET|POST /api/scan?secret=...
func (h *Handler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	result, err := h.scanner.Scan(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Scan pass failed")
		respondError(w, http.StatusInternalServerError, "Scan failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// TriggerMeasure runs a measurement pass synchronously.
// GET|POST /api/measure?secret=...
func (h *Handler) TriggerMeasure(w http.ResponseWriter, r *http.Request) {
	result, err := h.measurer.Measure(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Measurement pass failed")
		respondError(w, http.StatusInternalServerError, "Measure failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}
