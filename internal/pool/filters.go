// internal/pool/filters.go
package pool

import (
	"strings"

	"talent-match/internal/models"
)

// Fixed vocabularies for structured filter extraction. Matching is
// substring-based against these lists, not arbitrary NLP.

var knownUniversities = []string{
	"american university of sharjah",
	"american university of dubai",
	"university of dubai",
	"zayed university",
	"khalifa university",
	"nyu abu dhabi",
	"heriot-watt",
	"middlesex university",
	"canadian university dubai",
	"uae university",
}

var knownMajors = []string{
	"computer science",
	"software engineering",
	"information technology",
	"data science",
	"marketing",
	"business administration",
	"business",
	"finance",
	"accounting",
	"economics",
	"graphic design",
	"psychology",
	"engineering",
	"communications",
}

var knownSkills = []string{
	"social media",
	"content creation",
	"digital marketing",
	"seo",
	"copywriting",
	"javascript",
	"python",
	"react",
	"web development",
	"data analysis",
	"excel",
	"sql",
	"graphic design",
	"photoshop",
	"figma",
	"video editing",
	"public speaking",
	"project management",
	"sales",
}

// ExtractFilters parses a raw prompt into structured filter lists matched
// against the fixed vocabularies. Longer entries are listed first in the
// vocabularies so "computer science" wins over "science"-style prefixes.
func ExtractFilters(q *models.SearchQuery) {
	lower := strings.ToLower(q.Raw)

	for _, u := range knownUniversities {
		if strings.Contains(lower, u) {
			q.Universities = append(q.Universities, u)
		}
	}

	for _, m := range knownMajors {
		if strings.Contains(lower, m) && !containsFold(q.Majors, m) {
			// "business" is a prefix of "business administration"; skip the
			// generic entry when the specific one already matched.
			if subsumed(q.Majors, m) {
				continue
			}
			q.Majors = append(q.Majors, m)
		}
	}

	for _, s := range knownSkills {
		if strings.Contains(lower, s) && !containsFold(q.Skills, s) {
			q.Skills = append(q.Skills, s)
		}
	}
}

func containsFold(list []string, needle string) bool {
	for _, item := range list {
		if strings.EqualFold(item, needle) {
			return true
		}
	}
	return false
}

func subsumed(matched []string, candidate string) bool {
	for _, m := range matched {
		if strings.Contains(m, candidate) {
			return true
		}
	}
	return false
}
