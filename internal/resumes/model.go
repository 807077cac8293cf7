package resumes

import "time"

// Resume is a single stored version of a user's resume. Exactly one
// version per user is flagged as latest.
type Resume struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Version       int       `json:"version"`
	IsAIGenerated bool      `json:"isAiGenerated"`
	IsLatest      bool      `json:"isLatest"`
	Content       Content   `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}
