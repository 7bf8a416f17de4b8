package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wolfman30/rollerup-site/internal/leadexport"
	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

// LeadLister reads every locally saved lead.
type LeadLister interface {
	Read(ctx context.Context) ([]leads.Lead, error)
}

// LeadExporter renders downloadable exports.
type LeadExporter interface {
	CSV(ctx context.Context) (leadexport.File, error)
	XLSX(ctx context.Context) (leadexport.File, error)
}

// AdminLeadsHandler serves the operator view of locally saved leads.
type AdminLeadsHandler struct {
	store    LeadLister
	exporter LeadExporter
	logger   *logging.Logger
}

// NewAdminLeadsHandler creates a new admin leads handler.
func NewAdminLeadsHandler(store LeadLister, exporter LeadExporter, logger *logging.Logger) *AdminLeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminLeadsHandler{
		store:    store,
		exporter: exporter,
		logger:   logger,
	}
}

// LeadsListResponse is the admin list payload.
type LeadsListResponse struct {
	Count int          `json:"count"`
	Leads []leads.Lead `json:"leads"`
}

// ListLeads returns every saved lead in insertion order.
// GET /admin/leads?admin=1
func (h *AdminLeadsHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Read(r.Context())
	if err != nil {
		h.logger.Error("failed to read saved leads", "error", err)
		jsonError(w, "failed to read leads", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, LeadsListResponse{Count: len(records), Leads: records})
}

// ExportCSV downloads saved leads as CSV.
// GET /admin/leads/export.csv?admin=1
func (h *AdminLeadsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.serveExport(w, r, h.exporter.CSV)
}

// ExportXLSX downloads saved leads as a workbook.
// GET /admin/leads/export.xlsx?admin=1
func (h *AdminLeadsHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.serveExport(w, r, h.exporter.XLSX)
}

func (h *AdminLeadsHandler) serveExport(w http.ResponseWriter, r *http.Request, render func(context.Context) (leadexport.File, error)) {
	file, err := render(r.Context())
	if err != nil {
		h.logger.Error("lead export failed", "error", err)
		jsonError(w, "export failed", http.StatusInternalServerError)
		return
	}

	contentType := file.ContentType
	if contentType == "text/csv" {
		contentType = "text/csv; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
