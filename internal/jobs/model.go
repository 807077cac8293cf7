package jobs

import "time"

// Job is a tracked job application.
type Job struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	Status         string     `json:"status"`
	JobDescription string     `json:"jobDescription,omitempty"`
	CoverLetter    string     `json:"coverLetter,omitempty"`
	FollowUpDate   *time.Time `json:"followUpDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

const (
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusRejected  = "rejected"
	StatusOffer     = "offer"
)

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusInterview, StatusRejected, StatusOffer:
		return true
	}
	return false
}

// UpdateFields carries the mutable fields of a job. Nil pointers mean
// "leave unchanged".
type UpdateFields struct {
	JobDescription *string
	CoverLetter    *string
	Status         *string
	FollowUpDate   *time.Time
	ClearFollowUp  bool
}
