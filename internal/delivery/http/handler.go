package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
	"github.com/vogiaan1904/branchqueue/pkg/response"
)

type HTTPHandler struct {
	qSvc  service.QueueService
	relay service.EventRelay
	l     logger.Logger
}

// NewHTTPHandler builds the REST handlers. relay may be nil when no
// external sink is configured.
func NewHTTPHandler(qSvc service.QueueService, relay service.EventRelay, l logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		qSvc:  qSvc,
		relay: relay,
		l:     l,
	}
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "healthy",
		"service": "branchqueue",
	}
	if h.relay != nil {
		body["relay"] = h.relay.GetStatus()
	}
	h.respondJSON(w, r, http.StatusOK, body)
}

func (h *HTTPHandler) IssueTicket(w http.ResponseWriter, r *http.Request) {
	var in service.IssueTicketInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, r, errInvalidBody)
		return
	}

	v, err := h.qSvc.IssueTicket(r.Context(), in)
	if err != nil {
		h.respondError(w, r, mapHTTPError(err))
		return
	}

	h.respondJSON(w, r, http.StatusCreated, v)
}

func (h *HTTPHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.qSvc.ListTickets(r.Context()))
}

func (h *HTTPHandler) ListWaiting(w http.ResponseWriter, r *http.Request) {
	deptID := r.URL.Query().Get("department_id")
	h.respondJSON(w, r, http.StatusOK, h.qSvc.ListWaiting(r.Context(), deptID))
}

type callNextRequest struct {
	DepartmentID string `json:"department_id"`
}

// CallNext answers 204 when nothing is waiting for the counter.
func (h *HTTPHandler) CallNext(w http.ResponseWriter, r *http.Request) {
	var req callNextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, r, errInvalidBody)
		return
	}
	if req.DepartmentID == "" {
		req.DepartmentID = r.URL.Query().Get("department_id")
	}

	v, found, err := h.qSvc.CallNext(r.Context(), service.CallNextInput{
		Counter:      chi.URLParam(r, "counter"),
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		h.respondError(w, r, mapHTTPError(err))
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.respondJSON(w, r, http.StatusOK, v)
}

func (h *HTTPHandler) RecallTicket(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.qSvc.Recall(r.Context(), chi.URLParam(r, "id")))
}

func (h *HTTPHandler) FinishTicket(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.qSvc.Finish(r.Context(), chi.URLParam(r, "id")))
}

func (h *HTTPHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.qSvc.GetBoard(r.Context()))
}

func (h *HTTPHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.qSvc.ListDepartments(r.Context()))
}

func (h *HTTPHandler) AddDepartment(w http.ResponseWriter, r *http.Request) {
	var in service.AddDepartmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, r, errInvalidBody)
		return
	}

	d, err := h.qSvc.AddDepartment(r.Context(), in)
	if err != nil {
		h.respondError(w, r, mapHTTPError(err))
		return
	}

	h.respondJSON(w, r, http.StatusCreated, d)
}

func (h *HTTPHandler) RemoveDepartment(w http.ResponseWriter, r *http.Request) {
	if !h.qSvc.RemoveDepartment(r.Context(), chi.URLParam(r, "id")) {
		h.respondError(w, r, errDepartmentNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) ListPlaylist(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.qSvc.ListPlaylist(r.Context()))
}

func (h *HTTPHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	var in service.AddMediaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, r, errInvalidBody)
		return
	}

	m, err := h.qSvc.AddMedia(r.Context(), in)
	if err != nil {
		h.respondError(w, r, mapHTTPError(err))
		return
	}

	h.respondJSON(w, r, http.StatusCreated, m)
}

func (h *HTTPHandler) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	if !h.qSvc.RemoveMedia(r.Context(), chi.URLParam(r, "id")) {
		h.respondError(w, r, errMediaNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if err := response.JSON(w, statusCode, data); err != nil {
		h.l.Error(r.Context(), "Failed to encode JSON response", "error", err)
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	h.l.Debug(r.Context(), "Error response", "path", r.URL.Path, "error", err)
	if err := response.Error(w, err); err != nil {
		h.l.Error(r.Context(), "Failed to encode error response", "error", err)
	}
}
