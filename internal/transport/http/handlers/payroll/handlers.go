package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdash/internal/domain/payroll"
	"hrdash/internal/export"
	"hrdash/internal/hrapi"
	"hrdash/internal/transport/http/api"
	"hrdash/internal/transport/http/middleware"
	"hrdash/internal/transport/http/shared"
)

type Handler struct {
	Report *payroll.Report
	Slip   *payroll.SlipDialog
}

func NewHandler(report *payroll.Report, slip *payroll.SlipDialog) *Handler {
	return &Handler{Report: report, Slip: slip}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleReport)
		r.Get("/export", h.handleExportSpreadsheet)
		r.Post("/salary-slip", h.handleGenerateSlip)
		r.Get("/salary-slip/export", h.handleExportSlip)
	})
}

func requestedFilter(r *http.Request) hrapi.Filter {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		return hrapi.FilterCurrentMonth
	}
	return hrapi.Filter(raw)
}

func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request, requestID string) bool {
	filter := requestedFilter(r)
	if err := h.Report.LoadForFilter(r.Context(), filter); err != nil {
		if errors.Is(err, payroll.ErrBadFilter) {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "filter must be currentMonth or lastMonth", requestID)
			return false
		}
		shared.FailUpstream(w, err, "failed to fetch employee data", requestID)
		return false
	}
	return true
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if !h.loadReport(w, r, requestID) {
		return
	}

	api.Success(w, map[string]any{
		"filter": h.Report.Filter(),
		"rows":   h.Report.Rows(),
	}, requestID)
}

func (h *Handler) handleExportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if !h.loadReport(w, r, requestID) {
		return
	}

	workbook, err := export.SalaryWorkbook(h.Report.Rows())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build spreadsheet", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.SpreadsheetFilename))
	_, _ = w.Write(workbook)
}

type slipPayload struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) handleGenerateSlip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload slipPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}
	if strings.TrimSpace(payload.EmployeeID) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", requestID)
		return
	}

	slip, err := h.Slip.Generate(r.Context(), payload.EmployeeID, requestedFilter(r))
	if err != nil {
		if errors.Is(err, payroll.ErrBadFilter) {
			api.Fail(w, http.StatusBadRequest, "invalid_filter", "filter must be currentMonth or lastMonth", requestID)
			return
		}
		shared.FailUpstream(w, err, "failed to generate salary slip", requestID)
		return
	}

	// An empty upstream body closes the dialog without an error surfaced.
	if slip == nil {
		api.NoContent(w)
		return
	}
	api.Success(w, slip, requestID)
}

func (h *Handler) handleExportSlip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	document, err := h.Slip.Export(export.SalarySlipPDF)
	if err != nil {
		if errors.Is(err, payroll.ErrNoSlip) {
			api.Fail(w, http.StatusNotFound, "no_slip", "no salary slip generated yet", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render salary slip", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.SlipFilename))
	_, _ = w.Write(document)
}
