// internal/models/subscription.go
package models

import "time"

// Tier identifies a company subscription plan. Tier affects result count
// and visibility only, never scoring weights.
type Tier string

const (
	TierFree         Tier = "free"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

// Visibility is the three-level candidate field exposure ladder.
type Visibility string

const (
	VisibilityShortlistedOnly      Visibility = "shortlisted_only"
	VisibilityFullPool             Visibility = "full_pool"
	VisibilityCompleteTransparency Visibility = "complete_transparency"
)

// Subscription is the company plan record read by the tier gate.
type Subscription struct {
	CompanyID string     `json:"companyId"`
	Plan      Tier       `json:"plan"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	IsValid   bool       `json:"isValid"`
}
