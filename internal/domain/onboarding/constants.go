package onboarding

type Status string

const (
	StatusAwaitingApplication Status = "awaiting-application"
	StatusApplied             Status = "applied"
	StatusRejected            Status = "rejected"
	StatusReady               Status = "ready"
)

// Nursing-insurance categories written onto the employee record at promotion.
const (
	NursingFirstTier  = "first-tier insured"
	NursingSecondTier = "second-tier insured"
	NursingNotInsured = "not a nursing-insurance insured person"
)

// documentGroupSize is the external document generator's per-sheet limit.
const documentGroupSize = 4
