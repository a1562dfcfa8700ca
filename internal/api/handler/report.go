// internal/api/handler/report.go
package handler

import (
	"log/slog"
	"net/http"

	"rarebit-ledger/internal/service"
)

// ReportHandler handles HTTP requests for dashboards and sales reports.
type ReportHandler struct {
	reports service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Dashboard(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, stats)
}

// Sales handles GET /reports/sales.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.SalesReport(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": rows})
}

// SalesCSV handles GET /reports/sales.csv.
func (h *ReportHandler) SalesCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=laporan_jualan.csv")
	if err := h.reports.WriteSalesCSV(r.Context(), userID(r), w); err != nil {
		h.logger.Error("Failed to write sales CSV", slog.String("error", err.Error()))
	}
}
