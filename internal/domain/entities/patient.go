package entities

import "time"

// Patient represents a registered patient. Patients are read-only from the
// consultation workflow's perspective; the attending doctor only ever
// references them.
type Patient struct {
	ID        string     `json:"id"`
	HealthID  string     `json:"health_id"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	Age       *int       `json:"age,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
