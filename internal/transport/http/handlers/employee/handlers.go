package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/auth"
	"hrflow/internal/domain/employee"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
)

type Handler struct {
	employees *employee.Cache
}

func NewHandler(employees *employee.Cache) *Handler {
	return &Handler{employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{number}", h.handleGet)
		r.With(middleware.RequireAuth).Put("/{number}", h.handleSave)
		r.With(middleware.RequireAuth).Get("/{number}/dependents", h.handleDependents)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	records, err := h.employees.List(r.Context())
	if err != nil {
		slog.Error("employee list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	for i := range records {
		records[i].MyNumber = ""
		records[i].BankAccountNumber = ""
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	number, ok := h.authorizedNumber(w, r, requestID)
	if !ok {
		return
	}

	rec, err := h.employees.GetByNumber(r.Context(), number)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	number, ok := h.authorizedNumber(w, r, requestID)
	if !ok {
		return
	}

	var rec employee.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}
	// The path, not the body, names the record being saved.
	rec.EmployeeNumber = number

	if err := h.employees.Save(r.Context(), &rec); err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"employeeNumber": number}, requestID)
}

func (h *Handler) handleDependents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	number, ok := h.authorizedNumber(w, r, requestID)
	if !ok {
		return
	}

	deps, err := h.employees.ListDependents(r.Context(), number)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, deps, requestID)
}

// authorizedNumber resolves the path employee number and blocks employees
// from reading or writing records other than their own.
func (h *Handler) authorizedNumber(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	number := chi.URLParam(r, "number")
	if number == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee number is required", requestID)
		return "", false
	}
	user, _ := middleware.GetUser(r.Context())
	if user.Role != auth.RoleHR && user.EmployeeNumber != number {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your record", requestID)
		return "", false
	}
	return number, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	default:
		slog.Error("employee handler failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
