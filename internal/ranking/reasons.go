// internal/ranking/reasons.go
package ranking

import (
	"fmt"
	"strings"

	"talent-match/internal/models"
)

// Reasons builds the short human-readable explanations shown next to a
// match. Templated from sub-scores and profile fields; at most four.
func Reasons(c *models.Candidate, sub *models.SubScores, q *models.SearchQuery) []string {
	var reasons []string

	if sub.VectorSimilarity != nil && *sub.VectorSimilarity >= 0.75 {
		reasons = append(reasons, "Profile closely matches what you described")
	}

	if sub.Relevance >= 70 && c.Major != "" {
		reasons = append(reasons, fmt.Sprintf("Studying %s, directly relevant to your search", c.Major))
	} else if sub.Relevance >= 40 {
		reasons = append(reasons, "Background aligns with your search")
	}

	if q != nil && len(q.Skills) > 0 {
		if matched := matchedSkills(c, q.Skills); len(matched) > 0 {
			reasons = append(reasons, "Has requested skills: "+strings.Join(matched, ", "))
		}
	}

	if sub.Activity >= 70 {
		reasons = append(reasons, "Highly active on the platform recently")
	}

	if sub.Application >= 75 {
		reasons = append(reasons, "Submitted a strong, detailed application")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Included for pool breadth, review profile for fit")
	}
	if len(reasons) > 4 {
		reasons = reasons[:4]
	}
	return reasons
}

func matchedSkills(c *models.Candidate, requested []string) []string {
	declared := strings.ToLower(strings.Join(c.Skills, " ") + " " + strings.Join(c.Interests, " "))

	var matched []string
	for _, skill := range requested {
		if strings.Contains(declared, strings.ToLower(skill)) {
			matched = append(matched, skill)
		}
		if len(matched) == 3 {
			break
		}
	}
	return matched
}
