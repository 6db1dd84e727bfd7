package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"hrflow/internal/domain/employee"
)

// Uploader is the file-store collaborator. Uploads run before the application
// save so the persisted record always carries final URLs.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// RequestSweeper removes an outstanding HR-initiated change request once the
// matching application has been saved. The sweep runs only after a
// successful save; a failed save never marks a request as handled.
type RequestSweeper interface {
	DeleteOutstanding(ctx context.Context, employeeNumber string, appType string) error
}

// OnboardingTracker ties an onboarding application to the staged roster
// record it belongs to. Submission marks the staged record applied, a review
// decision moves it to rejected or ready, and the staged status in turn is
// what the application reports until promotion removes the record.
type OnboardingTracker interface {
	MarkApplied(ctx context.Context, employeeNumber string) error
	MarkDecision(ctx context.Context, employeeNumber string, to Status) error
	StagedStatus(ctx context.Context, employeeNumber string) (string, error)
}

type Service struct {
	Store     StoreAPI
	Employees employee.StoreAPI
	Files     Uploader
	Requests  RequestSweeper

	// Onboarding is optional; assigned after construction to avoid a cycle
	// with the onboarding package.
	Onboarding OnboardingTracker

	mu       sync.Mutex
	inflight map[string]bool
}

func NewService(store StoreAPI, employees employee.StoreAPI, files Uploader, requests RequestSweeper) *Service {
	return &Service{
		Store:     store,
		Employees: employees,
		Files:     files,
		Requests:  requests,
		inflight:  make(map[string]bool),
	}
}

// ValidationError carries the required fields still missing at submission.
// It is produced before any I/O; no partial save occurs.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "required fields missing: " + strings.Join(e.Missing, ", ")
}

type Upload struct {
	FileName string
	Data     []byte
}

type SubmitInput struct {
	Type           Type
	EmployeeNumber string
	Form           Fields
	Uploads        []Upload
}

type SubmitResult struct {
	ID     int64  `json:"id"`
	Status Status `json:"status"`
	// Warning names a failed side effect; the submission itself held.
	Warning string `json:"warning,omitempty"`
}

type DecisionResult struct {
	Status Status `json:"status"`
	// Warning names a failed side effect; the status change itself held.
	Warning string `json:"warning,omitempty"`
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[key] {
		return false
	}
	s.inflight[key] = true
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// Submit validates and normalizes a fresh form, uploads attachments, saves
// the application as pending and sweeps the outstanding HR request of the
// same type. Steps run sequentially; the first failure aborts the rest.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	schema, err := SchemaFor(in.Type)
	if err != nil {
		return SubmitResult{}, err
	}

	form := in.Form.Clone()
	state := schema.Rules.StateFor(form)
	if missing := schema.Rules.MissingFields(form, state); len(missing) > 0 {
		return SubmitResult{}, &ValidationError{Missing: missing}
	}

	key := "submit:" + in.EmployeeNumber + ":" + string(in.Type)
	if !s.acquire(key) {
		return SubmitResult{}, ErrSubmissionInFlight
	}
	defer s.release(key)

	attachments, err := s.uploadAll(ctx, in.EmployeeNumber, in.Type, in.Uploads)
	if err != nil {
		// Earlier uploads from this submission are not cleaned up.
		return SubmitResult{}, fmt.Errorf("upload attachment: %w", err)
	}

	payload, err := json.Marshal(schema.Normalize(form))
	if err != nil {
		return SubmitResult{}, err
	}

	app := &Application{
		Type:           in.Type,
		EmployeeNumber: in.EmployeeNumber,
		Status:         StatusPending,
		Payload:        payload,
	}
	id, err := s.Store.Create(ctx, app)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("save application: %w", err)
	}

	for _, att := range attachments {
		if err := s.Store.AddAttachment(ctx, id, att); err != nil {
			return SubmitResult{}, fmt.Errorf("save attachment: %w", err)
		}
	}

	result := SubmitResult{ID: id, Status: StatusPending}

	if s.Requests != nil {
		if err := s.Requests.DeleteOutstanding(ctx, in.EmployeeNumber, string(in.Type)); err != nil {
			slog.Warn("outstanding request sweep failed",
				"employeeNumber", in.EmployeeNumber, "applicationType", in.Type, "err", err)
			result.Warning = joinWarnings(result.Warning,
				fmt.Sprintf("submitted, but clearing the outstanding %s request failed: %v", in.Type, err))
		}
	}

	if in.Type == TypeOnboarding && s.Onboarding != nil {
		if err := s.Onboarding.MarkApplied(ctx, in.EmployeeNumber); err != nil {
			slog.Warn("staged onboarding update failed",
				"employeeNumber", in.EmployeeNumber, "err", err)
			result.Warning = joinWarnings(result.Warning,
				fmt.Sprintf("submitted, but marking the staged onboarding record as applied failed: %v", err))
		}
	}

	return result, nil
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}

func (s *Service) uploadAll(ctx context.Context, employeeNumber string, appType Type, uploads []Upload) ([]Attachment, error) {
	var out []Attachment
	for _, up := range uploads {
		path := fmt.Sprintf("applications/%s/%s/%s", employeeNumber, appType, up.FileName)
		url, err := s.Files.Upload(ctx, path, up.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, Attachment{FileName: up.FileName, URL: url})
	}
	return out, nil
}

// Resubmit replaces a rejected application's payload wholesale, clears the
// rejection comment and returns the status to pending. The id never changes.
// The in-flight guard is advisory; the store itself offers no isolation.
func (s *Service) Resubmit(ctx context.Context, id int64, form Fields) (SubmitResult, error) {
	key := fmt.Sprintf("resubmit:%d", id)
	if !s.acquire(key) {
		return SubmitResult{}, ErrSubmissionInFlight
	}
	defer s.release(key)

	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}
	if app.Status != StatusRejected {
		return SubmitResult{}, ErrNotRejected
	}

	schema, err := SchemaFor(app.Type)
	if err != nil {
		return SubmitResult{}, err
	}

	cloned := form.Clone()
	state := schema.Rules.StateFor(cloned)
	if missing := schema.Rules.MissingFields(cloned, state); len(missing) > 0 {
		return SubmitResult{}, &ValidationError{Missing: missing}
	}

	payload, err := json.Marshal(schema.Normalize(cloned))
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.Store.Replace(ctx, id, payload); err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{ID: id, Status: StatusPending}
	if app.Type == TypeOnboarding && s.Onboarding != nil {
		if err := s.Onboarding.MarkApplied(ctx, app.EmployeeNumber); err != nil {
			slog.Warn("staged onboarding update failed",
				"employeeNumber", app.EmployeeNumber, "err", err)
			result.Warning = fmt.Sprintf("resubmitted, but marking the staged onboarding record as applied failed: %v", err)
		}
	}
	return result, nil
}

// Decide applies an HR review decision. The status write commits first; for
// approvals the propagation handler then applies the payload onto the master
// record. Propagation failure is non-fatal: the approval stands and the
// operator gets a warning naming the failed side effect. Nothing retries.
func (s *Service) Decide(ctx context.Context, id int64, to Status, comment string) (DecisionResult, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return DecisionResult{}, err
	}
	if err := checkTransition(app.Status, to, comment); err != nil {
		return DecisionResult{}, err
	}
	if to != StatusRejected {
		comment = ""
	}

	if err := s.Store.SetStatus(ctx, id, to, comment); err != nil {
		return DecisionResult{}, fmt.Errorf("set status: %w", err)
	}

	result := DecisionResult{Status: to}

	if app.Type == TypeOnboarding && s.Onboarding != nil && (to == StatusApproved || to == StatusRejected) {
		if err := s.Onboarding.MarkDecision(ctx, app.EmployeeNumber, to); err != nil {
			slog.Warn("staged onboarding update failed",
				"applicationId", id, "employeeNumber", app.EmployeeNumber, "err", err)
			result.Warning = fmt.Sprintf("decided, but recording the decision on the staged onboarding record failed: %v", err)
		}
	}

	if to == StatusApproved {
		schema, err := SchemaFor(app.Type)
		if err != nil {
			return result, err
		}
		if schema.Propagate != nil {
			if err := schema.Propagate(ctx, s.Employees, app); err != nil {
				slog.Warn("approval propagation failed",
					"applicationId", id, "applicationType", app.Type, "err", err)
				result.Warning = fmt.Sprintf("approved, but applying %s to the employee record failed: %v", app.Type, err)
			}
		}
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Application, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.overlayOnboardingStatus(ctx, app)
	return app, nil
}

// Onboarding applications finish their lifecycle on the staged roster record
// rather than through approval propagation, so while a staged record exists
// its status is the one shown. After promotion the record is gone and the
// stored status stands.
func (s *Service) overlayOnboardingStatus(ctx context.Context, app *Application) {
	if app == nil || app.Type != TypeOnboarding || s.Onboarding == nil {
		return
	}
	if app.Status == StatusWithdrawn {
		return
	}
	staged, err := s.Onboarding.StagedStatus(ctx, app.EmployeeNumber)
	if err != nil || staged == "" {
		return
	}
	switch staged {
	case "rejected":
		app.Status = StatusRejected
	case "ready":
		app.Status = StatusApproved
	default:
		app.Status = StatusPending
	}
}

// Withdraw is the employee-side terminal transition from pending or rejected.
func (s *Service) Withdraw(ctx context.Context, id int64) error {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkTransition(app.Status, StatusWithdrawn, ""); err != nil {
		return err
	}
	return s.Store.SetStatus(ctx, id, StatusWithdrawn, "")
}

// List returns the review queue: open applications first, approved in the
// middle, withdrawn last, ties broken by ascending application id.
func (s *Service) List(ctx context.Context) ([]Application, error) {
	apps, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		s.overlayOnboardingStatus(ctx, &apps[i])
	}
	sortForReview(apps)
	return apps, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeNumber string) ([]Application, error) {
	apps, err := s.Store.ListByEmployee(ctx, employeeNumber)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		s.overlayOnboardingStatus(ctx, &apps[i])
	}
	sortForReview(apps)
	return apps, nil
}

func sortForReview(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		ri, rj := listRank(apps[i].Status), listRank(apps[j].Status)
		if ri != rj {
			return ri < rj
		}
		return apps[i].ID < apps[j].ID
	})
}

// EditView reconstructs the form representation for a rejected application so
// the applicant can amend and resubmit it.
func (s *Service) EditView(ctx context.Context, id int64) (Fields, error) {
	app, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	schema, err := SchemaFor(app.Type)
	if err != nil {
		return nil, err
	}
	return schema.Denormalize(app.Payload)
}
