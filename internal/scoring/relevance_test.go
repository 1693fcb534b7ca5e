// internal/scoring/relevance_test.go
package scoring

import (
	"testing"

	"talent-match/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceScoreMajorBucket(t *testing.T) {
	q := &models.SearchQuery{Raw: "marketing students", Majors: []string{"marketing"}}

	tests := []struct {
		name string
		c    models.Candidate
		want float64
	}{
		{
			name: "declared major gets the full budget",
			c:    models.Candidate{Major: "Marketing"},
			want: 50,
		},
		{
			name: "subjects fallback is worth 80 percent",
			c:    models.Candidate{Major: "Economics", Subjects: "marketing, statistics"},
			want: 40,
		},
		{
			name: "interest fallback is worth half",
			c:    models.Candidate{Major: "Economics", Interests: []string{"marketing"}},
			want: 25,
		},
		{
			name: "no signal at all",
			c:    models.Candidate{Major: "Biology"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := majorPoints(&tt.c, q.Majors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelevanceScoreSkillsProportional(t *testing.T) {
	c := &models.Candidate{Skills: []string{"social media", "excel"}}

	// One of two requested skills present: half the 30-point budget.
	got := skillsPoints(c, []string{"social media", "figma"})
	assert.InDelta(t, 15.0, got, 0.001)

	// Both present: full budget.
	got = skillsPoints(c, []string{"social media", "excel"})
	assert.InDelta(t, 30.0, got, 0.001)
}

func TestRelevanceScoreUniversity(t *testing.T) {
	c := &models.Candidate{University: "American University of Sharjah"}

	assert.Equal(t, 15.0, universityPoints(c, []string{"american university of sharjah"}))
	assert.Equal(t, 0.0, universityPoints(c, []string{"zayed university"}))
	assert.Equal(t, 0.0, universityPoints(&models.Candidate{}, []string{"zayed university"}))
}

func TestRelevanceScoreCapped(t *testing.T) {
	c := &models.Candidate{
		Name:       "Amira",
		Major:      "Marketing",
		University: "Zayed University",
		Bio:        "marketing social media content",
		Skills:     []string{"social media", "content creation"},
	}
	q := &models.SearchQuery{
		Raw:          "marketing social media content creation zayed",
		Majors:       []string{"marketing"},
		Skills:       []string{"social media", "content creation"},
		Universities: []string{"zayed university"},
	}

	got := RelevanceScore(c, q)
	assert.LessOrEqual(t, got, 100.0)
	assert.Greater(t, got, 90.0)
}

func TestQueryTokensFiltering(t *testing.T) {
	tokens := queryTokens("The students who have experience in marketing, SEO!")

	assert.Contains(t, tokens, "marketing")
	assert.Contains(t, tokens, "seo")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "in")
	assert.NotContains(t, tokens, "students")
}
