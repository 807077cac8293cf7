package resumes

import (
	"encoding/json"
	"strings"
)

// Content is the structured resume document stored with each version.
type Content struct {
	Name       string       `json:"name"`
	Contact    Contact      `json:"contact"`
	Summary    string       `json:"summary,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
}

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Location    string   `json:"location,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Description string   `json:"description,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// ParseContent decodes raw JSON into Content and checks the minimum
// shape a usable resume needs.
func ParseContent(raw []byte) (Content, error) {
	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return Content{}, err
	}
	if strings.TrimSpace(content.Name) == "" {
		return Content{}, ErrInvalidContent
	}
	return content, nil
}
