package onboarding

import "time"

// AgeAt is the calendar-year difference adjusted down when the birthday has
// not yet occurred in the reference year.
func AgeAt(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	beforeBirthday := at.Month() < birthDate.Month() ||
		(at.Month() == birthDate.Month() && at.Day() < birthDate.Day())
	if beforeBirthday {
		age--
	}
	return age
}

// NursingInsuranceType classifies by age at promotion time.
func NursingInsuranceType(age int) string {
	switch {
	case age >= 65:
		return NursingFirstTier
	case age >= 40:
		return NursingSecondTier
	default:
		return NursingNotInsured
	}
}

// groupForDocuments splits the batch into fixed-size groups for the document
// generator. Promotion itself stays per-employee.
func groupForDocuments(staged []StagedEmployee) [][]StagedEmployee {
	var groups [][]StagedEmployee
	for len(staged) > 0 {
		n := documentGroupSize
		if len(staged) < n {
			n = len(staged)
		}
		groups = append(groups, staged[:n])
		staged = staged[n:]
	}
	return groups
}
