package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hrflow/internal/domain/employee"
	"hrflow/internal/domain/request"
)

// Uploader receives the generated onboarding sheets.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// Mailer delivers the welcome mail carrying the initial password. Delivery
// failure never undoes a promotion.
type Mailer interface {
	SendOnboardingEmail(ctx context.Context, address, name, initialPassword string) error
}

// CredentialStore provisions the login for a freshly promoted employee.
type CredentialStore interface {
	Provision(ctx context.Context, employeeNumber, email, passwordHash string) error
}

// FollowUpCreator raises the dependent-add request for staged employees that
// reported dependents; onboarding itself collects no dependent detail.
type FollowUpCreator interface {
	Create(ctx context.Context, in request.CreateInput) (int64, error)
}

type Service struct {
	Staged      StoreAPI
	Employees   employee.StoreAPI
	Credentials CredentialStore
	Requests    FollowUpCreator
	Files       Uploader
	Mail        Mailer
}

func NewService(staged StoreAPI, employees employee.StoreAPI, credentials CredentialStore, requests FollowUpCreator, files Uploader, mail Mailer) *Service {
	return &Service{
		Staged:      staged,
		Employees:   employees,
		Credentials: credentials,
		Requests:    requests,
		Files:       files,
		Mail:        mail,
	}
}

func (s *Service) Create(ctx context.Context, staged *StagedEmployee) error {
	if staged.Status == "" {
		staged.Status = StatusAwaitingApplication
	}
	return s.Staged.Create(ctx, staged)
}

func (s *Service) List(ctx context.Context) ([]StagedEmployee, error) {
	return s.Staged.List(ctx)
}

func (s *Service) SetStatus(ctx context.Context, employeeNumber string, status Status) error {
	return s.Staged.SetStatus(ctx, employeeNumber, status)
}

// Promote moves every named staged employee into the permanent roster.
// Failures are isolated per employee and reported in the result; sheet
// generation and mail delivery are auxiliary and only produce warnings.
func (s *Service) Promote(ctx context.Context, employeeNumbers []string) (BatchResult, error) {
	var result BatchResult

	var eligible []StagedEmployee
	for _, number := range employeeNumbers {
		staged, err := s.Staged.Get(ctx, number)
		if err != nil {
			result.fail(number, err)
			continue
		}
		if staged.Status != StatusReady {
			result.fail(number, fmt.Errorf("%w: status %s", ErrNotReady, staged.Status))
			continue
		}
		eligible = append(eligible, *staged)
	}

	for _, group := range groupForDocuments(eligible) {
		if err := s.generateSheet(ctx, group); err != nil {
			slog.Warn("onboarding sheet generation failed", "groupSize", len(group), "err", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("onboarding sheet generation failed: %v", err))
		}
	}

	for i := range eligible {
		if err := s.promoteOne(ctx, &eligible[i], &result); err != nil {
			result.fail(eligible[i].EmployeeNumber, err)
			continue
		}
		result.Promoted++
	}
	return result, nil
}

func (s *Service) generateSheet(ctx context.Context, group []StagedEmployee) error {
	data, err := welcomeSheet(group)
	if err != nil {
		return err
	}
	if s.Files == nil {
		return nil
	}
	path := fmt.Sprintf("onboarding/sheets/%s.pdf", uuid.NewString())
	_, err = s.Files.Upload(ctx, path, data)
	return err
}

func (s *Service) promoteOne(ctx context.Context, staged *StagedEmployee, result *BatchResult) error {
	now := time.Now()
	birthDate := staged.BirthDate

	rec := &employee.Record{
		EmployeeNumber:       staged.EmployeeNumber,
		LastName:             staged.LastName,
		FirstName:            staged.FirstName,
		LastNameKana:         staged.LastNameKana,
		FirstNameKana:        staged.FirstNameKana,
		BirthDate:            &birthDate,
		Email:                staged.Email,
		NursingInsuranceType: NursingInsuranceType(AgeAt(birthDate, now)),
		HiredAt:              &now,
	}
	if err := s.Employees.Save(ctx, rec); err != nil {
		return fmt.Errorf("save employee record: %w", err)
	}

	initialPassword := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash initial password: %w", err)
	}
	if err := s.Credentials.Provision(ctx, staged.EmployeeNumber, staged.Email, string(hash)); err != nil {
		return fmt.Errorf("provision credentials: %w", err)
	}

	if staged.DependentStatus == "present" && s.Requests != nil {
		_, err := s.Requests.Create(ctx, request.CreateInput{
			EmployeeNumber:  staged.EmployeeNumber,
			ApplicationType: "dependent-add",
			Message:         "Please file a dependent-add application for the dependents reported during onboarding.",
			CreatedBy:       "onboarding",
		})
		if err != nil {
			slog.Warn("dependent-add follow-up request failed", "employeeNumber", staged.EmployeeNumber, "err", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: dependent-add follow-up request failed: %v", staged.EmployeeNumber, err))
		}
	}

	if err := s.Staged.Delete(ctx, staged.EmployeeNumber); err != nil {
		return fmt.Errorf("remove staged record: %w", err)
	}

	if s.Mail != nil {
		name := staged.LastName + " " + staged.FirstName
		if err := s.Mail.SendOnboardingEmail(ctx, staged.Email, name, initialPassword); err != nil {
			slog.Warn("onboarding email failed", "employeeNumber", staged.EmployeeNumber, "err", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: onboarding email failed: %v", staged.EmployeeNumber, err))
		}
	}
	return nil
}

func (r *BatchResult) fail(employeeNumber string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, PromotionError{EmployeeNumber: employeeNumber, Message: err.Error()})
}
