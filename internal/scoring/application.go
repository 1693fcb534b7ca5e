// internal/scoring/application.go
package scoring

import (
	"time"

	"talent-match/internal/models"
)

// ApplicationQualityScore rates an application's submitted content, 0-100.
// Base 50, cover-letter length tiers, fixed bonuses for structured answer
// fields, recency bonus. Used only in shortlisting mode.
func ApplicationQualityScore(a *models.Application, now time.Time) float64 {
	score := 50.0

	switch letter := len(a.CoverLetter); {
	case letter > 200:
		score += 15
	case letter > 100:
		score += 10
	case letter > 50:
		score += 5
	}

	if a.WhyInterested != "" {
		score += 10
	}
	if a.ProposedApproach != "" {
		score += 10
	}
	if a.RelevantExperience != "" {
		score += 10
	}

	age := now.Sub(a.CreatedAt)
	switch {
	case age < 7*24*time.Hour:
		score += 10
	case age < 30*24*time.Hour:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}
