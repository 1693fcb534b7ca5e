// internal/scoring/activity.go
package scoring

import (
	"time"

	"talent-match/internal/models"
)

// ActivityScore rates how engaged a candidate is on the platform, 0-100.
// Weighted sum of recency buckets, monthly applications (capped),
// profile-completeness flags and total applications (capped).
func ActivityScore(c *models.Candidate, now time.Time) float64 {
	score := 0.0

	if c.LastActiveAt != nil {
		days := now.Sub(*c.LastActiveAt).Hours() / 24.0
		switch {
		case days <= 7:
			score += 30
		case days <= 30:
			score += 20
		case days <= 90:
			score += 10
		}
	}

	monthly := float64(c.ApplicationsThisMonth) * 5
	if monthly > 20 {
		monthly = 20
	}
	score += monthly

	if c.Bio != "" {
		score += 10
	}
	if c.University != "" {
		score += 10
	}
	if c.Major != "" {
		score += 10
	}
	if c.ProfileCompleted {
		score += 10
	}

	total := float64(c.TotalApplications)
	if total > 10 {
		total = 10
	}
	score += total

	if score > 100 {
		score = 100
	}
	return score
}

// EngagementLevel buckets an activity score into HIGH/MEDIUM/LOW.
func EngagementLevel(activityScore float64) models.EngagementLevel {
	switch {
	case activityScore >= 70:
		return models.EngagementHigh
	case activityScore >= 40:
		return models.EngagementMedium
	default:
		return models.EngagementLow
	}
}
