package onboardinghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/auth"
	"hrflow/internal/domain/audit"
	"hrflow/internal/domain/onboarding"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	service *onboarding.Service
	audit   *audit.Service
	metrics *metrics.Collector
}

func NewHandler(service *onboarding.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{service: service, audit: auditSvc, metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/onboarding", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleHR))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/{number}/status", h.handleSetStatus)
		r.Post("/promote", h.handlePromote)
	})
}

type createPayload struct {
	EmployeeNumber  string `json:"employeeNumber"`
	LastName        string `json:"lastName"`
	FirstName       string `json:"firstName"`
	LastNameKana    string `json:"lastNameKana"`
	FirstNameKana   string `json:"firstNameKana"`
	BirthDate       string `json:"birthDate"`
	Email           string `json:"email"`
	DependentStatus string `json:"dependentStatus"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeNumber", payload.EmployeeNumber, "employee number is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("email", payload.Email, "email is required")
	v.Enum("dependentStatus", payload.DependentStatus, []string{"present", "none"}, "must be present or none")
	birthDate, _ := v.Date("birthDate", payload.BirthDate)
	if v.Reject(w, requestID) {
		return
	}

	staged := &onboarding.StagedEmployee{
		EmployeeNumber:  payload.EmployeeNumber,
		LastName:        payload.LastName,
		FirstName:       payload.FirstName,
		LastNameKana:    payload.LastNameKana,
		FirstNameKana:   payload.FirstNameKana,
		BirthDate:       birthDate,
		Email:           payload.Email,
		DependentStatus: payload.DependentStatus,
	}
	if err := h.service.Create(r.Context(), staged); err != nil {
		slog.Error("staged employee create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	api.Created(w, staged, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	staged, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("staged employee list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	api.Success(w, staged, requestID)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	number := chi.URLParam(r, "number")

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}
	status := onboarding.Status(strings.TrimSpace(payload.Status))
	switch status {
	case onboarding.StatusAwaitingApplication, onboarding.StatusApplied, onboarding.StatusRejected, onboarding.StatusReady:
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_status", "unknown onboarding status", requestID)
		return
	}

	if err := h.service.SetStatus(r.Context(), number, status); err != nil {
		if errors.Is(err, onboarding.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "staged employee not found", requestID)
			return
		}
		slog.Error("staged status update failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	api.Success(w, map[string]string{"employeeNumber": number, "status": string(status)}, requestID)
}

type promotePayload struct {
	EmployeeNumbers []string `json:"employeeNumbers"`
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload promotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}
	if len(payload.EmployeeNumbers) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeNumbers is required", requestID)
		return
	}

	started := time.Now()
	result, err := h.service.Promote(r.Context(), payload.EmployeeNumbers)
	if err != nil {
		slog.Error("promotion batch failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}

	for i := 0; i < result.Promoted; i++ {
		h.metrics.Promotion()
	}
	slog.Info("promotion batch finished",
		"requested", len(payload.EmployeeNumbers),
		"promoted", result.Promoted,
		"failed", result.Failed,
		"durationMs", time.Since(started).Milliseconds(),
		"requestId", requestID)

	if h.audit != nil {
		err := h.audit.Record(r.Context(), strconv.FormatInt(user.UserID, 10), audit.ActionPromote,
			"onboarding", strings.Join(payload.EmployeeNumbers, ","), requestID, r.RemoteAddr, nil, result)
		if err != nil {
			slog.Warn("audit record failed", "action", audit.ActionPromote, "err", err)
		}
	}
	api.Success(w, result, requestID)
}
