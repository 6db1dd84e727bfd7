package application

import (
	"encoding/json"
	"time"
)

// Application is one submitted HR request. The payload is stored fully
// normalized; the raw multi-part form representation never reaches the store.
type Application struct {
	ID             int64           `json:"id"`
	Type           Type            `json:"applicationType"`
	EmployeeNumber string          `json:"employeeNumber"`
	Status         Status          `json:"status"`
	StatusComment  string          `json:"statusComment"`
	Payload        json.RawMessage `json:"payload"`
	Attachments    []Attachment    `json:"attachments,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type Attachment struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId,omitempty"`
	FileName      string    `json:"fileName"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Fields is the flat form representation exchanged with the input view.
// Multi-part values arrive under suffixed keys (myNumber1..myNumber3) and
// checkboxes as "true"/"false" strings.
type Fields map[string]string

func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

func (f Fields) Bool(key string) bool {
	return f.Get(key) == "true"
}

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
