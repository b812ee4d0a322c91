package rosterhandler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdash/internal/domain/roster"
	"hrdash/internal/hrapi"
	"hrdash/internal/transport/http/api"
	"hrdash/internal/transport/http/middleware"
	"hrdash/internal/transport/http/shared"
)

const maxEmployeeFormBytes = 10 << 20

type Handler struct {
	Roster *roster.Roster
}

func NewHandler(service *roster.Roster) *Handler {
	return &Handler{Roster: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSubmit)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.Roster.LoadAll(r.Context()); err != nil {
		shared.FailUpstream(w, err, "failed to fetch employee data", requestID)
		return
	}
	api.Success(w, h.Roster.Employees(), requestID)
}

// handleSubmit accepts the roster form as multipart/form-data. Text and
// numeric fields share one extraction path keyed by field name; the image
// field is special-cased to the first uploaded file.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(maxEmployeeFormBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", requestID)
		return
	}

	profile := hrapi.NewEmployee{
		Name:          r.FormValue("name"),
		Position:      r.FormValue("position"),
		Department:    r.FormValue("department"),
		Email:         r.FormValue("email"),
		EmployeeID:    r.FormValue("employeeId"),
		HourlyRate:    r.FormValue("hourlyRate"),
		BankCode:      r.FormValue("bankCode"),
		BranchName:    r.FormValue("branchName"),
		BankName:      r.FormValue("bankName"),
		BankBranch:    r.FormValue("bankBranch"),
		BankAccountNo: r.FormValue("bankAccountNumber"),
		CostCentre:    r.FormValue("costCentre"),
		PANNumber:     r.FormValue("panNumber"),
	}

	if file, header, err := r.FormFile("employeeImage"); err == nil {
		defer file.Close()
		image, err := io.ReadAll(file)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "could not read employee image", requestID)
			return
		}
		profile.Image = image
		profile.ImageName = header.Filename
	}

	created, err := h.Roster.Submit(r.Context(), profile)
	if err != nil {
		var validationErr *roster.ValidationError
		if errors.As(err, &validationErr) {
			api.Fail(w, http.StatusBadRequest, "validation_failed", validationErr.Error(), requestID)
			return
		}
		shared.FailUpstream(w, err, "failed to add employee", requestID)
		return
	}

	api.Created(w, created, requestID)
}
