package application

// Payload shapes persisted per application type. The JSON field names are an
// external contract; other tooling reads these documents.

type Payload interface {
	PayloadType() Type
}

type DependentAddPayload struct {
	RelationshipType   string  `json:"relationshipType"`
	SpouseType         string  `json:"spouseType,omitempty"`
	Relationship       string  `json:"relationship,omitempty"`
	RelationshipOther  string  `json:"relationshipOther,omitempty"`
	LastName           string  `json:"lastName"`
	FirstName          string  `json:"firstName"`
	LastNameKana       string  `json:"lastNameKana"`
	FirstNameKana      string  `json:"firstNameKana"`
	BirthDate          string  `json:"birthDate"`
	Occupation         string  `json:"occupation"`
	OccupationOther    string  `json:"occupationOther,omitempty"`
	Income             string  `json:"income"`
	BasicPensionNumber string  `json:"basicPensionNumber"`
	MyNumber           *string `json:"myNumber"`
	LivingTogether     string  `json:"livingTogether"`
	PostalCode         string  `json:"postalCode"`
	Address            string  `json:"address"`
	AddressKana        string  `json:"addressKana"`
	MonthlySupport     string  `json:"monthlySupport"`
}

func (DependentAddPayload) PayloadType() Type { return TypeDependentAdd }

type RemovedDependent struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	BirthDate    string `json:"birthDate"`
	MyNumber     string `json:"myNumber"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

type DependentRemovePayload struct {
	RemovalDate        string           `json:"removalDate"`
	RemovalReason      string           `json:"removalReason"`
	RemovalReasonOther string           `json:"removalReasonOther,omitempty"`
	Dependent          RemovedDependent `json:"dependent"`
}

func (DependentRemovePayload) PayloadType() Type { return TypeDependentRemove }

type NewAddress struct {
	PostalCode  string `json:"postalCode"`
	Address     string `json:"address"`
	AddressKana string `json:"addressKana"`
}

type ResidentAddress struct {
	SameAsOldAddress bool   `json:"sameAsOldAddress"`
	SameAsNewAddress bool   `json:"sameAsNewAddress"`
	PostalCode       string `json:"postalCode"`
	Address          string `json:"address"`
}

type AddressChangePayload struct {
	MoveDate           string          `json:"moveDate"`
	IsOverseasResident bool            `json:"isOverseasResident"`
	NewAddress         NewAddress      `json:"newAddress"`
	ResidentAddress    ResidentAddress `json:"residentAddress"`
}

func (AddressChangePayload) PayloadType() Type { return TypeAddressChange }

type NewName struct {
	LastName      string `json:"lastName"`
	FirstName     string `json:"firstName"`
	LastNameKana  string `json:"lastNameKana"`
	FirstNameKana string `json:"firstNameKana"`
}

type NameChangePayload struct {
	ChangeDate string  `json:"changeDate"`
	NewName    NewName `json:"newName"`
}

func (NameChangePayload) PayloadType() Type { return TypeNameChange }

// NewMyNumber keeps the three entry groups unjoined; this is the one type
// whose contract stores parts.
type NewMyNumber struct {
	Part1 string `json:"part1"`
	Part2 string `json:"part2"`
	Part3 string `json:"part3"`
}

type NationalIDChangePayload struct {
	ChangeDate  string      `json:"changeDate"`
	NewMyNumber NewMyNumber `json:"newMyNumber"`
}

func (NationalIDChangePayload) PayloadType() Type { return TypeNationalIDChange }

type MaternityLeavePayload struct {
	ExpectedDeliveryDate    string `json:"expectedDeliveryDate"`
	IsMultipleBirth         bool   `json:"isMultipleBirth"`
	MaternityLeaveStartDate string `json:"maternityLeaveStartDate"`
	MaternityLeaveEndDate   string `json:"maternityLeaveEndDate"`
	StayAddress             string `json:"stayAddress"`
}

func (MaternityLeavePayload) PayloadType() Type { return TypeMaternityLeave }

type ResignationPayload struct {
	ResignationDate         string `json:"resignationDate"`
	LastWorkDate            string `json:"lastWorkDate"`
	ResignationReason       string `json:"resignationReason"`
	SeparationNotice        string `json:"separationNotice"`
	PostResignationAddress  string `json:"postResignationAddress"`
	PostResignationPhone    string `json:"postResignationPhone"`
	PostResignationEmail    string `json:"postResignationEmail"`
	PostResignationInsurance string `json:"postResignationInsurance"`
	SameAsCurrentAddress    bool   `json:"sameAsCurrentAddress"`
	SameAsCurrentPhone      bool   `json:"sameAsCurrentPhone"`
	SameAsCurrentEmail      bool   `json:"sameAsCurrentEmail"`
}

func (ResignationPayload) PayloadType() Type { return TypeResignation }

// OnboardingPayload mirrors the staged-employee form; the staging record is
// the authority, the application only tracks review state.
type OnboardingPayload struct {
	LastName        string `json:"lastName"`
	FirstName       string `json:"firstName"`
	LastNameKana    string `json:"lastNameKana"`
	FirstNameKana   string `json:"firstNameKana"`
	BirthDate       string `json:"birthDate"`
	Email           string `json:"email"`
	DependentStatus string `json:"dependentStatus"`
}

func (OnboardingPayload) PayloadType() Type { return TypeOnboarding }
