package handlers

import (
	"net/http"
	"strings"
)

func (h *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.service.Store().GetAll())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleReportDetail(w http.ResponseWriter, r *http.Request) {
	reportID := strings.TrimPrefix(r.URL.Path, "/api/reports/")

	report, exists := h.service.Store().Get(reportID)
	if !exists {
		h.writeError(w, "Report not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, report)
	case "DELETE":
		h.service.Store().Delete(reportID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
