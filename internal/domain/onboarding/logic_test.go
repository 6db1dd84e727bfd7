package onboarding

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeAtBirthdayBoundary(t *testing.T) {
	birth := date(1986, time.June, 15)

	cases := []struct {
		name string
		at   time.Time
		want int
	}{
		{"day before birthday", date(2026, time.June, 14), 39},
		{"on birthday", date(2026, time.June, 15), 40},
		{"day after birthday", date(2026, time.June, 16), 40},
		{"earlier month", date(2026, time.January, 1), 39},
		{"later month", date(2026, time.December, 1), 40},
	}
	for _, tc := range cases {
		if got := AgeAt(birth, tc.at); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestNursingInsuranceClassification(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{66, NursingFirstTier},
		{65, NursingFirstTier},
		{64, NursingSecondTier},
		{50, NursingSecondTier},
		{40, NursingSecondTier},
		{39, NursingNotInsured},
		{30, NursingNotInsured},
	}
	for _, tc := range cases {
		if got := NursingInsuranceType(tc.age); got != tc.want {
			t.Fatalf("age %d: got %q want %q", tc.age, got, tc.want)
		}
	}
}

func TestGroupForDocuments(t *testing.T) {
	staged := make([]StagedEmployee, 9)
	groups := groupForDocuments(staged)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if len(groups[0]) != 4 || len(groups[1]) != 4 || len(groups[2]) != 1 {
		t.Fatalf("unexpected group sizes: %d %d %d", len(groups[0]), len(groups[1]), len(groups[2]))
	}

	if groups = groupForDocuments(nil); groups != nil {
		t.Fatalf("empty batch must yield no groups, got %v", groups)
	}
}
