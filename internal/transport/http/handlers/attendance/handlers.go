package attendancehandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdash/internal/domain/attendance"
	"hrdash/internal/hrapi"
	"hrdash/internal/transport/http/api"
	"hrdash/internal/transport/http/middleware"
	"hrdash/internal/transport/http/shared"
)

type Handler struct {
	Board *attendance.Board
}

func NewHandler(board *attendance.Board) *Handler {
	return &Handler{Board: board}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleBoard)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Post("/employees", h.handleAddEmployee)
	})
}

// handleBoard refreshes the snapshot and projects it onto the requested
// calendar day, today by default.
func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	day := time.Now().In(h.Board.Location())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw, h.Board.Location())
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", requestID)
			return
		}
		day = parsed
	}

	if err := h.Board.LoadAll(r.Context()); err != nil {
		shared.FailUpstream(w, err, "failed to fetch employees", requestID)
		return
	}

	api.Success(w, map[string]any{
		"date": day.Format("2006-01-02"),
		"rows": h.Board.RowsFor(day),
	}, requestID)
}

type checkPayload struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date,omitempty"`
}

func (h *Handler) decodeCheck(w http.ResponseWriter, r *http.Request, requestID string) (string, time.Time, bool) {
	var payload checkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return "", time.Time{}, false
	}
	if strings.TrimSpace(payload.EmployeeID) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeId is required", requestID)
		return "", time.Time{}, false
	}

	day := time.Now().In(h.Board.Location())
	if payload.Date != "" {
		parsed, err := shared.ParseDate(payload.Date, h.Board.Location())
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", requestID)
			return "", time.Time{}, false
		}
		day = parsed
	}
	return payload.EmployeeID, day, true
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, day, ok := h.decodeCheck(w, r, requestID)
	if !ok {
		return
	}

	if err := h.Board.CheckIn(r.Context(), employeeID, day); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			api.Fail(w, http.StatusConflict, "already_checked_in", "employee has already checked in today", requestID)
			return
		}
		// The command was accepted upstream; only the board re-fetch
		// failed. Report success so the client does not retry the
		// check-in, but flag the stale board.
		if errors.Is(err, attendance.ErrRefreshFailed) {
			log.Printf("employee %s checked in, board refresh failed: %v", employeeID, err)
			api.Success(w, map[string]any{"status": "checked-in", "refreshed": false}, requestID)
			return
		}
		shared.FailUpstream(w, err, "failed to check in", requestID)
		return
	}

	log.Printf("employee %s checked in", employeeID)
	api.Success(w, map[string]any{"status": "checked-in", "refreshed": true}, requestID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, day, ok := h.decodeCheck(w, r, requestID)
	if !ok {
		return
	}

	if err := h.Board.CheckOut(r.Context(), employeeID, day); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			api.Fail(w, http.StatusConflict, "already_checked_out", "employee has already checked out today", requestID)
			return
		}
		if errors.Is(err, attendance.ErrRefreshFailed) {
			log.Printf("employee %s checked out, board refresh failed: %v", employeeID, err)
			api.Success(w, map[string]any{"status": "checked-out", "refreshed": false}, requestID)
			return
		}
		shared.FailUpstream(w, err, "failed to check out", requestID)
		return
	}

	log.Printf("employee %s checked out", employeeID)
	api.Success(w, map[string]any{"status": "checked-out", "refreshed": true}, requestID)
}

// handleAddEmployee is the board's quick-add dialog: a minimal JSON
// profile, no image.
func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var profile hrapi.Employee
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}

	created, err := h.Board.AddEmployee(r.Context(), profile)
	if err != nil {
		shared.FailUpstream(w, err, "failed to add employee", requestID)
		return
	}
	api.Created(w, created, requestID)
}
