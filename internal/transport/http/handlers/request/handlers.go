package requesthandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/auth"
	"hrflow/internal/domain/audit"
	"hrflow/internal/domain/request"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
)

type Handler struct {
	service *request.Service
	audit   *audit.Service
}

func NewHandler(service *request.Service, auditSvc *audit.Service) *Handler {
	return &Handler{service: service, audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/requests", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleHR)).Delete("/{id}", h.handleDelete)
		r.With(middleware.RequireAuth).Get("/mine", h.handleListMine)
	})
}

type createPayload struct {
	EmployeeNumber  string `json:"employeeNumber"`
	ApplicationType string `json:"applicationType"`
	Message         string `json:"message"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}
	if payload.EmployeeNumber == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeNumber is required", requestID)
		return
	}

	id, err := h.service.Create(r.Context(), request.CreateInput{
		EmployeeNumber:  payload.EmployeeNumber,
		ApplicationType: payload.ApplicationType,
		Message:         payload.Message,
		CreatedBy:       strconv.FormatInt(user.UserID, 10),
	})
	if err != nil {
		if errors.Is(err, request.ErrUnknownType) {
			api.Fail(w, http.StatusBadRequest, "unknown_type", "unknown application type", requestID)
			return
		}
		slog.Error("change request create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}

	if h.audit != nil {
		err := h.audit.Record(r.Context(), strconv.FormatInt(user.UserID, 10), audit.ActionRequested,
			"request", strconv.FormatInt(id, 10), requestID, r.RemoteAddr, nil, payload)
		if err != nil {
			slog.Warn("audit record failed", "action", audit.ActionRequested, "err", err)
		}
	}
	api.Created(w, map[string]int64{"id": id}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	requests, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("change request list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeNumber == "" {
		api.Success(w, []request.Request{}, requestID)
		return
	}
	requests, err := h.service.ListByEmployee(r.Context(), user.EmployeeNumber)
	if err != nil {
		slog.Error("change request list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", requestID)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, request.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "change request not found", requestID)
			return
		}
		slog.Error("change request delete failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	api.Success(w, map[string]int64{"id": id}, requestID)
}
