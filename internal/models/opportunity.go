// internal/models/opportunity.go
package models

import "time"

// Opportunity is a company project candidates apply to. Read-only input
// to scoring: used to build enhanced query text and project-alignment
// sub-scores.
type Opportunity struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"companyId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SkillsRequired  []string  `json:"skillsRequired"`
	Requirements    []string  `json:"requirements,omitempty"`
	Category        string    `json:"category"`
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	Location        string    `json:"location,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
