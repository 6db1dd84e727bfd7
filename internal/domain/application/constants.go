package application

type Type string

const (
	TypeDependentAdd     Type = "dependent-add"
	TypeDependentRemove  Type = "dependent-remove"
	TypeAddressChange    Type = "address-change"
	TypeNameChange       Type = "name-change"
	TypeNationalIDChange Type = "national-id-change"
	TypeMaternityLeave   Type = "maternity-leave"
	TypeResignation      Type = "resignation"
	TypeOnboarding       Type = "onboarding"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Literal an applicant selects to open the free-text companion field.
const OtherChoice = "other"
