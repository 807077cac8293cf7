package users

import "time"

// User is an account identity. HashedPassword is empty for OAuth-only
// accounts. Resume is the legacy single-blob CV field kept for accounts
// created before versioned resumes existed.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"`
	Resume         string    `json:"resume,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
