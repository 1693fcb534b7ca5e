// internal/models/candidate.go
package models

import "time"

// Candidate is the canonical student profile consumed by the matching core.
// It is read-only here; profile mutation happens in the web application.
type Candidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	LinkedIn       string   `json:"linkedIn,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	University     string   `json:"university,omitempty"`
	Major          string   `json:"major,omitempty"`
	Subjects       string   `json:"subjects,omitempty"`
	HighSchool     string   `json:"highSchool,omitempty"`
	EducationLevel string   `json:"educationLevel,omitempty"`
	GraduationYear int      `json:"graduationYear,omitempty"`
	Location       string   `json:"location,omitempty"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	Goals          []string `json:"goals"`

	// Activity metrics, used by the activity scorer and the emergency
	// fallback stage.
	LastActiveAt          *time.Time `json:"lastActiveAt,omitempty"`
	ApplicationsThisMonth int        `json:"applicationsThisMonth"`
	TotalApplications     int        `json:"totalApplications"`
	ProfileCompleted      bool       `json:"profileCompleted"`
	ProfileCompletedAt    *time.Time `json:"profileCompletedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`

	// Summaries of prior applications (project titles/categories), folded
	// into the profile embedding text for behavioral context.
	PriorApplicationSummary string `json:"priorApplicationSummary,omitempty"`
}

// EngagementLevel is a coarse activity bucket derived from the activity score.
type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "HIGH"
	EngagementMedium EngagementLevel = "MEDIUM"
	EngagementLow    EngagementLevel = "LOW"
)

// CandidateVector holds the three persisted embeddings for one candidate.
// Regenerated when stale; never mutated by scoring code.
type CandidateVector struct {
	CandidateID     string    `json:"candidateId"`
	ProfileVector   []float64 `json:"profileVector"`
	SkillsVector    []float64 `json:"skillsVector"`
	AcademicVector  []float64 `json:"academicVector"`
	Version         string    `json:"version"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
