package request

import "time"

// Request is an HR-initiated prompt asking an employee to file an application
// of a given type. It disappears as soon as a matching application is saved;
// there is no acknowledgement step.
type Request struct {
	ID              int64     `json:"id"`
	EmployeeNumber  string    `json:"employeeNumber"`
	ApplicationType string    `json:"applicationType"`
	Message         string    `json:"message,omitempty"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}
