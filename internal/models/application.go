// internal/models/application.go
package models

import "time"

// ApplicationStatus enumerates application lifecycle states.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// Application links a candidate to an opportunity. The shortlisting flow
// mutates Status and attaches ranking metadata; everything else is input.
type Application struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"userId"`
	ProjectID          string            `json:"projectId"`
	Status             ApplicationStatus `json:"status"`
	CoverLetter        string            `json:"coverLetter,omitempty"`
	WhyInterested      string            `json:"whyInterested,omitempty"`
	ProposedApproach   string            `json:"proposedApproach,omitempty"`
	RelevantExperience string            `json:"relevantExperience,omitempty"`
	CompatibilityScore *float64          `json:"compatibilityScore,omitempty"`
	ShortlistRank      int               `json:"shortlistRank,omitempty"`
	ShortlistedAt      *time.Time        `json:"shortlistedAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}
