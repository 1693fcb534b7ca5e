// internal/scoring/relevance.go
package scoring

import (
	"strings"

	"talent-match/internal/models"
)

// Strict relevance point budget. Subject relevance deliberately outweighs
// institution: domain fit matters more than where someone studied.
const (
	majorBudget      = 50.0
	skillsBudget     = 30.0
	universityBudget = 15.0
	keywordBudget    = 5.0
)

// RelevanceScore is the canonical query-relevance formula, 0-100.
// Additive budget across four buckets evaluated in priority order:
// major/subjects > skills overlap > university > generic keywords.
func RelevanceScore(c *models.Candidate, q *models.SearchQuery) float64 {
	score := 0.0

	score += majorPoints(c, q.Majors)
	score += skillsPoints(c, q.Skills)
	score += universityPoints(c, q.Universities)
	score += keywordPoints(c, q.Raw)

	if score > 100 {
		score = 100
	}
	return score
}

// majorPoints checks the major field first, then the free-text subjects
// field, then interests/goals as a last resort.
func majorPoints(c *models.Candidate, majors []string) float64 {
	if len(majors) == 0 {
		return 0
	}

	major := strings.ToLower(c.Major)
	subjects := strings.ToLower(c.Subjects)
	tail := strings.ToLower(strings.Join(c.Interests, " ") + " " + strings.Join(c.Goals, " "))

	for _, m := range majors {
		needle := strings.ToLower(m)
		if major != "" && strings.Contains(major, needle) {
			return majorBudget
		}
	}
	for _, m := range majors {
		needle := strings.ToLower(m)
		if subjects != "" && strings.Contains(subjects, needle) {
			return majorBudget * 0.8
		}
	}
	for _, m := range majors {
		needle := strings.ToLower(m)
		if strings.Contains(tail, needle) {
			return majorBudget * 0.5
		}
	}
	return 0
}

// skillsPoints is proportional to the fraction of requested skills found
// anywhere in the candidate's goals, interests, bio or subjects.
func skillsPoints(c *models.Candidate, skills []string) float64 {
	if len(skills) == 0 {
		return 0
	}

	haystack := strings.ToLower(strings.Join(c.Goals, " ") + " " +
		strings.Join(c.Interests, " ") + " " + c.Bio + " " + c.Subjects + " " +
		strings.Join(c.Skills, " "))

	found := 0
	for _, s := range skills {
		if strings.Contains(haystack, strings.ToLower(s)) {
			found++
		}
	}
	return skillsBudget * float64(found) / float64(len(skills))
}

func universityPoints(c *models.Candidate, universities []string) float64 {
	if len(universities) == 0 || c.University == "" {
		return 0
	}
	uni := strings.ToLower(c.University)
	for _, u := range universities {
		if strings.Contains(uni, strings.ToLower(u)) {
			return universityBudget
		}
	}
	return 0
}

// keywordPoints is the catch-all: token overlap between the raw query and
// the full profile text, lowest weight.
func keywordPoints(c *models.Candidate, raw string) float64 {
	tokens := queryTokens(raw)
	if len(tokens) == 0 {
		return 0
	}

	profile := strings.ToLower(c.Name + " " + c.Bio + " " + c.University + " " +
		c.Major + " " + c.Subjects + " " + strings.Join(c.Skills, " ") + " " +
		strings.Join(c.Interests, " ") + " " + strings.Join(c.Goals, " "))

	found := 0
	for _, tok := range tokens {
		if strings.Contains(profile, tok) {
			found++
		}
	}
	return keywordBudget * float64(found) / float64(len(tokens))
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "students": true,
	"student": true, "looking": true, "need": true, "who": true, "that": true,
	"have": true, "has": true, "experience": true, "in": true, "of": true,
}

func queryTokens(raw string) []string {
	fields := strings.Fields(strings.ToLower(raw))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()\"'")
		if len(f) < 3 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
