package onboarding

import "time"

// StagedEmployee is a pre-employee record created by HR in bulk. It lives in
// the staging store until the batch processor promotes it into the roster,
// at which point it is deleted.
type StagedEmployee struct {
	EmployeeNumber  string    `json:"employeeNumber"`
	LastName        string    `json:"lastName"`
	FirstName       string    `json:"firstName"`
	LastNameKana    string    `json:"lastNameKana"`
	FirstNameKana   string    `json:"firstNameKana"`
	BirthDate       time.Time `json:"birthDate"`
	Email           string    `json:"email"`
	DependentStatus string    `json:"dependentStatus"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type PromotionError struct {
	EmployeeNumber string `json:"employeeNumber"`
	Message        string `json:"message"`
}

// BatchResult summarizes one promotion run. Failures are per-employee; one
// bad record never aborts the rest of the batch.
type BatchResult struct {
	Promoted int              `json:"promoted"`
	Failed   int              `json:"failed"`
	Errors   []PromotionError `json:"errors,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}
