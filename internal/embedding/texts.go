// internal/embedding/texts.go
package embedding

import (
	"fmt"
	"strings"

	"talent-match/internal/models"
)

// majorSkillHints enriches sparse profiles: common majors mapped to the
// skill keywords usually implied by them.
var majorSkillHints = map[string]string{
	"computer science":        "programming, algorithms, software development, data structures",
	"software engineering":    "programming, software development, system design, testing",
	"marketing":               "digital marketing, social media, content creation, brand management",
	"business administration": "management, strategy, operations, communication",
	"finance":                 "financial analysis, accounting, excel, investment",
	"graphic design":          "visual design, adobe creative suite, branding, typography",
	"psychology":              "research, communication, behavioral analysis, empathy",
	"economics":               "data analysis, statistics, market research, forecasting",
}

// majorAcademicContext maps majors to a short academic-context phrase.
var majorAcademicContext = map[string]string{
	"computer science":        "STEM degree with strong quantitative and technical coursework",
	"software engineering":    "engineering degree focused on software systems",
	"marketing":               "business degree focused on consumer behavior and promotion",
	"business administration": "general business degree covering management disciplines",
	"finance":                 "business degree with quantitative financial coursework",
	"graphic design":          "creative arts degree focused on visual communication",
	"psychology":              "social science degree with research methods training",
	"economics":               "social science degree with quantitative modeling coursework",
}

// queryExpansions appends domain keywords when a search prompt mentions
// one of the buckets, so sparse prompts still land near the right
// candidates in embedding space.
var queryExpansions = []struct {
	trigger  string
	expanded string
}{
	{"marketing", "digital marketing, social media, content creation, brand management, advertising"},
	{"software", "programming, web development, coding, algorithms, engineering"},
	{"developer", "programming, web development, coding, algorithms, engineering"},
	{"finance", "financial analysis, accounting, investment, banking, economics"},
	{"design", "graphic design, ui ux, visual identity, creative direction, branding"},
	{"business", "strategy, operations, management, entrepreneurship, consulting"},
}

// ProfileText builds the full-profile textual projection of a candidate.
func ProfileText(c *models.Candidate) string {
	var b strings.Builder

	writePart(&b, "Name", c.Name)
	writePart(&b, "Bio", c.Bio)
	writePart(&b, "University", c.University)
	writePart(&b, "Major", c.Major)
	writePart(&b, "Education level", c.EducationLevel)
	if c.GraduationYear > 0 {
		writePart(&b, "Graduation year", fmt.Sprintf("%d", c.GraduationYear))
	}
	writePart(&b, "Skills", strings.Join(c.Skills, ", "))
	writePart(&b, "Interests", strings.Join(c.Interests, ", "))
	writePart(&b, "Goals", strings.Join(c.Goals, ", "))
	writePart(&b, "Location", c.Location)
	writePart(&b, "Application history", c.PriorApplicationSummary)

	return strings.TrimSpace(b.String())
}

// SkillsText builds the skills-focused projection, padded with
// major-derived skill hints for sparse profiles.
func SkillsText(c *models.Candidate) string {
	var b strings.Builder

	writePart(&b, "Skills", strings.Join(c.Skills, ", "))
	writePart(&b, "Major", c.Major)
	writePart(&b, "Interests", strings.Join(c.Interests, ", "))
	writePart(&b, "Goals", strings.Join(c.Goals, ", "))

	if hints, ok := majorSkillHints[strings.ToLower(strings.TrimSpace(c.Major))]; ok {
		writePart(&b, "Related skills", hints)
	}

	return strings.TrimSpace(b.String())
}

// AcademicText builds the academic projection.
func AcademicText(c *models.Candidate) string {
	var b strings.Builder

	writePart(&b, "University", c.University)
	writePart(&b, "Major", c.Major)
	writePart(&b, "Education level", c.EducationLevel)
	writePart(&b, "High school", c.HighSchool)
	if c.GraduationYear > 0 {
		writePart(&b, "Graduation year", fmt.Sprintf("%d", c.GraduationYear))
	}

	if context, ok := majorAcademicContext[strings.ToLower(strings.TrimSpace(c.Major))]; ok {
		writePart(&b, "Academic context", context)
	}

	return strings.TrimSpace(b.String())
}

// EnhanceQuery appends domain-keyword expansions to a raw search prompt.
// Each bucket is appended at most once.
func EnhanceQuery(raw string) string {
	lower := strings.ToLower(raw)
	enhanced := strings.TrimSpace(raw)

	seen := map[string]bool{}
	for _, exp := range queryExpansions {
		if !strings.Contains(lower, exp.trigger) || seen[exp.expanded] {
			continue
		}
		seen[exp.expanded] = true
		enhanced += ". Related: " + exp.expanded
	}

	return enhanced
}

func writePart(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s. ", label, value)
}
