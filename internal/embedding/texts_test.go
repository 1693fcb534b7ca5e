// internal/embedding/texts_test.go
package embedding

import (
	"strings"
	"testing"

	"talent-match/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleCandidate() *models.Candidate {
	return &models.Candidate{
		ID:             "c1",
		Name:           "Amira Hassan",
		Bio:            "Third-year student who runs two club accounts",
		University:     "Zayed University",
		Major:          "Marketing",
		EducationLevel: "undergraduate",
		GraduationYear: 2026,
		Skills:         []string{"social media", "copywriting"},
		Interests:      []string{"branding"},
		Goals:          []string{"work at an agency"},
		Location:       "Dubai",
	}
}

func TestProfileTextIncludesAllSections(t *testing.T) {
	text := ProfileText(sampleCandidate())

	assert.Contains(t, text, "Name: Amira Hassan")
	assert.Contains(t, text, "Major: Marketing")
	assert.Contains(t, text, "Skills: social media, copywriting")
	assert.Contains(t, text, "Graduation year: 2026")
	assert.Contains(t, text, "Location: Dubai")
}

func TestProfileTextSkipsEmptyFields(t *testing.T) {
	text := ProfileText(&models.Candidate{ID: "sparse", Name: "Just A Name"})

	assert.Equal(t, "Name: Just A Name.", text)
	assert.NotContains(t, text, "Bio")
	assert.NotContains(t, text, "University")
}

func TestSkillsTextPadsFromMajorHints(t *testing.T) {
	c := sampleCandidate()
	text := SkillsText(c)
	assert.Contains(t, text, "Related skills: digital marketing")

	c.Major = "Astrophysics" // no hint entry
	text = SkillsText(c)
	assert.NotContains(t, text, "Related skills")
}

func TestAcademicTextAddsContext(t *testing.T) {
	text := AcademicText(sampleCandidate())

	assert.Contains(t, text, "University: Zayed University")
	assert.Contains(t, text, "Academic context: business degree focused on consumer behavior")
	assert.NotContains(t, text, "Skills")
}

func TestEnhanceQuery(t *testing.T) {
	t.Run("expands matching buckets once", func(t *testing.T) {
		got := EnhanceQuery("software developer for our startup")

		// "software" and "developer" share one expansion; it appears once.
		assert.Equal(t, 1, strings.Count(got, "Related:"))
		assert.Contains(t, got, "web development")
	})

	t.Run("multiple distinct buckets all expand", func(t *testing.T) {
		got := EnhanceQuery("marketing and finance interns")

		assert.Contains(t, got, "social media")
		assert.Contains(t, got, "financial analysis")
	})

	t.Run("no trigger leaves query untouched", func(t *testing.T) {
		assert.Equal(t, "psychology research assistant", EnhanceQuery("psychology research assistant"))
	})
}
