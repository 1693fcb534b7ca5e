// internal/scoring/project.go
package scoring

import (
	"strings"

	"talent-match/internal/models"
)

// categoryMajors maps project category buckets to the major keywords that
// directly qualify for them.
var categoryMajors = map[string][]string{
	"marketing":            {"marketing", "communications", "media", "advertising"},
	"computer-science":     {"computer science", "software", "information technology", "data science", "engineering"},
	"finance":              {"finance", "accounting", "economics", "banking"},
	"psychology":           {"psychology", "sociology", "behavioral"},
	"business-development": {"business", "management", "entrepreneurship", "commerce"},
}

// genericBusinessTech are the partial-credit terms shared across buckets.
var genericBusinessTech = []string{"business", "management", "technology", "analytics", "communication"}

// skillSynonyms widens required-skill matching: a required skill matches
// if the candidate declares it or any synonym.
var skillSynonyms = map[string][]string{
	"javascript":         {"react", "node", "web development", "typescript"},
	"python":             {"data science", "machine learning", "django"},
	"social media":       {"instagram", "tiktok", "content creation"},
	"graphic design":     {"photoshop", "illustrator", "figma", "canva"},
	"data analysis":      {"excel", "sql", "statistics", "tableau"},
	"public speaking":    {"presentation", "communication"},
	"project management": {"agile", "scrum", "planning"},
}

// ProjectAlignmentScore rates how well a candidate fits an opportunity.
// Category affinity up to 40, required-skills overlap up to 35,
// interest/goal presence up to 15, location 10, plus a flat 20-point
// floor so normalization never collapses to all-zero.
func ProjectAlignmentScore(c *models.Candidate, p *models.Opportunity) float64 {
	if p == nil {
		return 0
	}

	score := 20.0 // baseline floor

	score += categoryAffinity(c, p.Category)
	score += requiredSkillsOverlap(c.Skills, p.SkillsRequired)
	score += interestPresence(c, p)
	score += locationMatch(c.Location, p.Location)

	if score > 100 {
		score = 100
	}
	return score
}

// ProjectQueryBoost adds up to 50 points when a free-text query is ranked
// against projects (the inverse direction of company search): title match
// is weighted heavily, then field-bucket match, then description.
func ProjectQueryBoost(p *models.Opportunity, rawQuery string) float64 {
	if p == nil || strings.TrimSpace(rawQuery) == "" {
		return 0
	}

	boost := 0.0
	lowerQuery := strings.ToLower(rawQuery)
	title := strings.ToLower(p.Title)
	description := strings.ToLower(p.Description)

	for _, tok := range queryTokens(rawQuery) {
		if strings.Contains(title, tok) {
			boost += 25
			break
		}
	}

	if majors, ok := categoryMajors[normalizeCategory(p.Category)]; ok {
		for _, m := range majors {
			if strings.Contains(lowerQuery, m) {
				boost += 15
				break
			}
		}
	}

	for _, tok := range queryTokens(rawQuery) {
		if strings.Contains(description, tok) {
			boost += 10
			break
		}
	}

	if boost > 50 {
		boost = 50
	}
	return boost
}

func categoryAffinity(c *models.Candidate, category string) float64 {
	majors, ok := categoryMajors[normalizeCategory(category)]
	if !ok {
		return 0
	}

	major := strings.ToLower(c.Major)
	for _, m := range majors {
		if major != "" && strings.Contains(major, m) {
			return 40
		}
	}

	// Partial credit for generic business/tech backgrounds.
	fullText := strings.ToLower(c.Major + " " + c.Bio + " " + strings.Join(c.Interests, " "))
	for _, term := range genericBusinessTech {
		if strings.Contains(fullText, term) {
			return 25
		}
	}
	return 0
}

// requiredSkillsOverlap is proportional to the percentage of required
// skills found among candidate skills, via substring matching widened by
// the synonym table.
func requiredSkillsOverlap(candidateSkills, required []string) float64 {
	if len(required) == 0 {
		return 0
	}

	declared := strings.ToLower(strings.Join(candidateSkills, " "))

	matched := 0
	for _, req := range required {
		if matchesSkill(declared, strings.ToLower(req)) {
			matched++
		}
	}
	return 35.0 * float64(matched) / float64(len(required))
}

// SkillsMatchScore is the standalone 0-100 version of the required-skills
// overlap, used as the vectorless skills sub-score.
func SkillsMatchScore(candidateSkills, required []string) float64 {
	if len(required) == 0 {
		return 0
	}

	declared := strings.ToLower(strings.Join(candidateSkills, " "))
	matched := 0
	for _, req := range required {
		if matchesSkill(declared, strings.ToLower(req)) {
			matched++
		}
	}
	return 100.0 * float64(matched) / float64(len(required))
}

func matchesSkill(declared, required string) bool {
	if strings.Contains(declared, required) {
		return true
	}
	for _, syn := range skillSynonyms[required] {
		if strings.Contains(declared, syn) {
			return true
		}
	}
	return false
}

func interestPresence(c *models.Candidate, p *models.Opportunity) float64 {
	projectText := strings.ToLower(p.Title + " " + p.Description + " " + p.Category)

	hits := 0
	for _, kw := range append(append([]string{}, c.Interests...), c.Goals...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if len(kw) >= 3 && strings.Contains(projectText, kw) {
			hits++
		}
	}

	points := float64(hits) * 5
	if points > 15 {
		points = 15
	}
	return points
}

func locationMatch(candidateLoc, projectLoc string) float64 {
	if candidateLoc == "" || projectLoc == "" {
		return 0
	}
	a := strings.ToLower(candidateLoc)
	b := strings.ToLower(projectLoc)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 10
	}
	return 0
}

func normalizeCategory(category string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "-")
}
