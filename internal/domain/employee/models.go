package employee

import "time"

// Record is the authoritative profile for an active employee. It is mutated
// only by the employee's own profile save, by approval propagation, and by
// onboarding promotion. Resignation stamps fields; the record is never
// deleted.
type Record struct {
	EmployeeNumber string     `json:"employeeNumber"`
	LastName       string     `json:"lastName"`
	FirstName      string     `json:"firstName"`
	LastNameKana   string     `json:"lastNameKana"`
	FirstNameKana  string     `json:"firstNameKana"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`

	MyNumber           string `json:"myNumber,omitempty"`
	BasicPensionNumber string `json:"basicPensionNumber,omitempty"`

	PostalCode  string `json:"postalCode"`
	Address     string `json:"address"`
	AddressKana string `json:"addressKana"`
	// Legal-registration address; may mirror the current address or be
	// independent.
	ResidentPostalCode string `json:"residentPostalCode"`
	ResidentAddress    string `json:"residentAddress"`

	HealthInsuranceType  string `json:"healthInsuranceType"`
	NursingInsuranceType string `json:"nursingInsuranceType"`

	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`

	BankName          string `json:"bankName"`
	BankBranch        string `json:"bankBranch"`
	BankAccountNumber string `json:"bankAccountNumber,omitempty"`

	HiredAt                  *time.Time `json:"hiredAt,omitempty"`
	ResignationDate          *time.Time `json:"resignationDate,omitempty"`
	LastWorkDate             *time.Time `json:"lastWorkDate,omitempty"`
	ResignationReason        string     `json:"resignationReason,omitempty"`
	PostResignationAddress   string     `json:"postResignationAddress,omitempty"`
	PostResignationPhone     string     `json:"postResignationPhone,omitempty"`
	PostResignationEmail     string     `json:"postResignationEmail,omitempty"`
	PostResignationInsurance string     `json:"postResignationInsurance,omitempty"`

	Dependents []Dependent `json:"dependents,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Dependent carries a stable id; the (name, relationship) pair is kept only
// as a match shim for removal applications filed against older records.
type Dependent struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Relationship   string   `json:"relationship"`
	BirthDate      string   `json:"birthDate"`
	Income         string   `json:"income"`
	LivingTogether string   `json:"livingTogether"`
	PostalCode     string   `json:"postalCode,omitempty"`
	Address        string   `json:"address,omitempty"`
	MonthlySupport string   `json:"monthlySupport,omitempty"`
	MyNumber       string   `json:"myNumber,omitempty"`
	Documents      []string `json:"documents,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type AddressUpdate struct {
	PostalCode         string
	Address            string
	AddressKana        string
	ResidentPostalCode string
	ResidentAddress    string
}

type NameUpdate struct {
	LastName      string
	FirstName     string
	LastNameKana  string
	FirstNameKana string
}

type ResignationStamp struct {
	ResignationDate          *time.Time
	LastWorkDate             *time.Time
	Reason                   string
	PostResignationAddress   string
	PostResignationPhone     string
	PostResignationEmail     string
	PostResignationInsurance string
}
