package shared

import "time"

// Form date fields (birth dates, move dates, resignation dates) arrive as
// YYYY-MM-DD; clients replaying stored values may send RFC3339.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
