package applicationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/auth"
	"hrflow/internal/domain/application"
	"hrflow/internal/domain/audit"
	"hrflow/internal/domain/employee"
	"hrflow/internal/platform/metrics"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	service *application.Service
	audit   *audit.Service
	metrics *metrics.Collector
}

func NewHandler(service *application.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{service: service, audit: auditSvc, metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleHR)).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/mine", h.handleListMine)
		r.With(middleware.RequireAuth).Get("/types", h.handleTypes)
		r.With(middleware.RequireAuth).Post("/", h.handleSubmit)
		r.With(middleware.RequireAuth).Get("/{id}", h.handleGet)
		r.With(middleware.RequireAuth).Get("/{id}/edit", h.handleEditView)
		r.With(middleware.RequireAuth).Post("/{id}/resubmit", h.handleResubmit)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{id}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{id}/reject", h.handleReject)
		r.With(middleware.RequireAuth).Post("/{id}/withdraw", h.handleWithdraw)
	})
}

type attachmentPayload struct {
	FileName string `json:"fileName"`
	Data     []byte `json:"data"`
}

type submitPayload struct {
	ApplicationType string              `json:"applicationType"`
	EmployeeNumber  string              `json:"employeeNumber"`
	Fields          application.Fields  `json:"fields"`
	Attachments     []attachmentPayload `json:"attachments"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}

	employeeNumber := user.EmployeeNumber
	if user.Role == auth.RoleHR && payload.EmployeeNumber != "" {
		employeeNumber = payload.EmployeeNumber
	}
	if employeeNumber == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employeeNumber is required", requestID)
		return
	}

	uploads := make([]application.Upload, 0, len(payload.Attachments))
	for _, att := range payload.Attachments {
		if att.FileName == "" {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "attachment fileName is required", requestID)
			return
		}
		uploads = append(uploads, application.Upload{FileName: att.FileName, Data: att.Data})
	}

	result, err := h.service.Submit(r.Context(), application.SubmitInput{
		Type:           application.Type(payload.ApplicationType),
		EmployeeNumber: employeeNumber,
		Form:           payload.Fields,
		Uploads:        uploads,
	})
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	h.metrics.Submission()
	h.record(r, user, audit.ActionSubmit, result.ID, map[string]any{
		"applicationType": payload.ApplicationType,
		"employeeNumber":  employeeNumber,
	})
	api.Created(w, result, requestID)
}

type resubmitPayload struct {
	Fields application.Fields `json:"fields"`
}

func (h *Handler) handleResubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}
	if !h.ensureOwnership(w, r, id, requestID) {
		return
	}

	var payload resubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
		return
	}

	result, err := h.service.Resubmit(r.Context(), id, payload.Fields)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	h.metrics.Resubmission()
	h.record(r, user, audit.ActionResubmit, id, nil)
	api.Success(w, result, requestID)
}

type decisionPayload struct {
	Comment string `json:"comment"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, application.StatusApproved, audit.ActionApprove)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, application.StatusRejected, audit.ActionReject)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, to application.Status, action string) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	var payload decisionPayload
	if r.Body != nil {
		// Decisions without a comment may arrive with an empty body.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	result, err := h.service.Decide(r.Context(), id, to, payload.Comment)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	if to == application.StatusApproved {
		h.metrics.Approval()
	} else {
		h.metrics.Rejection()
	}
	h.record(r, user, action, id, map[string]any{"status": string(result.Status), "comment": payload.Comment})
	api.Success(w, result, requestID)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}
	if !h.ensureOwnership(w, r, id, requestID) {
		return
	}

	if err := h.service.Withdraw(r.Context(), id); err != nil {
		h.writeError(w, err, requestID)
		return
	}

	h.metrics.Withdrawal()
	h.record(r, user, audit.ActionWithdraw, id, nil)
	api.Success(w, map[string]string{"status": string(application.StatusWithdrawn)}, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	apps, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, apps, requestID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	if user.EmployeeNumber == "" {
		api.Success(w, []application.Application{}, requestID)
		return
	}
	apps, err := h.service.ListByEmployee(r.Context(), user.EmployeeNumber)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, apps, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}
	app, ok := h.loadAuthorized(w, r, id, requestID)
	if !ok {
		return
	}
	api.Success(w, app, requestID)
}

func (h *Handler) handleEditView(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}
	if _, ok := h.loadAuthorized(w, r, id, requestID); !ok {
		return
	}
	form, err := h.service.EditView(r.Context(), id)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, form, requestID)
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	api.Success(w, application.TypeDescriptors(), requestID)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid application id", requestID)
		return 0, false
	}
	return id, true
}

// ensureOwnership blocks employees from acting on applications that are not
// theirs. HR users pass through.
func (h *Handler) ensureOwnership(w http.ResponseWriter, r *http.Request, id int64, requestID string) bool {
	_, ok := h.loadAuthorized(w, r, id, requestID)
	return ok
}

func (h *Handler) loadAuthorized(w http.ResponseWriter, r *http.Request, id int64, requestID string) (*application.Application, bool) {
	user, _ := middleware.GetUser(r.Context())
	app, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, requestID)
		return nil, false
	}
	if user.Role != auth.RoleHR && app.EmployeeNumber != user.EmployeeNumber {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your application", requestID)
		return nil, false
	}
	return app, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error, requestID string) {
	var validation *application.ValidationError
	switch {
	case errors.As(err, &validation):
		issues := make([]shared.ValidationIssue, 0, len(validation.Missing))
		for _, field := range validation.Missing {
			issues = append(issues, shared.ValidationIssue{Field: field, Reason: "required"})
		}
		shared.FailValidation(w, requestID, issues)
	case errors.Is(err, application.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "application not found", requestID)
	case errors.Is(err, application.ErrUnknownType):
		api.Fail(w, http.StatusBadRequest, "unknown_type", "unknown application type", requestID)
	case errors.Is(err, application.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), requestID)
	case errors.Is(err, application.ErrCommentRequired):
		api.Fail(w, http.StatusBadRequest, "comment_required", "a comment is required to reject", requestID)
	case errors.Is(err, application.ErrNotRejected):
		api.Fail(w, http.StatusConflict, "not_rejected", "only a rejected application can be resubmitted", requestID)
	case errors.Is(err, application.ErrSubmissionInFlight):
		api.Fail(w, http.StatusConflict, "submission_in_flight", "an identical submission is already being processed", requestID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	default:
		slog.Error("application handler failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

func (h *Handler) record(r *http.Request, user middleware.UserContext, action string, applicationID int64, after any) {
	if h.audit == nil {
		return
	}
	err := h.audit.Record(
		r.Context(),
		strconv.FormatInt(user.UserID, 10),
		action,
		"application",
		strconv.FormatInt(applicationID, 10),
		middleware.GetRequestID(r.Context()),
		r.RemoteAddr,
		nil,
		after,
	)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
