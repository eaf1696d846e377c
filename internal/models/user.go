package models

// User is the slice of the profile-service user this core needs. Profile
// attributes are owned by the profile service; only the id is referenced
// by stored rows.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Year       string `json:"year,omitempty"`
	Department string `json:"department,omitempty"`
	Intent     string `json:"intent,omitempty"`
}
