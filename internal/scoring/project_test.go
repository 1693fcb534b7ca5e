// internal/scoring/project_test.go
package scoring

import (
	"testing"

	"talent-match/internal/models"

	"github.com/stretchr/testify/assert"
)

func marketingProject() *models.Opportunity {
	return &models.Opportunity{
		ID:             "p1",
		Title:          "Instagram growth campaign",
		Description:    "Grow our brand presence on social platforms",
		Category:       "Marketing",
		SkillsRequired: []string{"social media", "graphic design"},
		Location:       "Dubai",
	}
}

func TestProjectAlignmentScore(t *testing.T) {
	tests := []struct {
		name string
		c    models.Candidate
		want float64
	}{
		{
			name: "perfect fit hits the ceiling",
			c: models.Candidate{
				Major:     "Marketing",
				Skills:    []string{"social media", "photoshop"},
				Interests: []string{"instagram", "brand"},
				Location:  "Dubai, UAE",
			},
			// 20 floor + 40 category + 35 skills (photoshop matches via
			// graphic-design synonyms) + 10 interests + 10 location, capped.
			want: 100,
		},
		{
			name: "generic business background gets partial category credit",
			c:    models.Candidate{Major: "Management Studies"},
			want: 20 + 25,
		},
		{
			name: "unrelated candidate keeps only the floor",
			c:    models.Candidate{Major: "Mechanical Engineering"},
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectAlignmentScore(&tt.c, marketingProject())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectAlignmentNilProject(t *testing.T) {
	assert.Equal(t, 0.0, ProjectAlignmentScore(&models.Candidate{}, nil))
}

func TestSkillSynonymsWidening(t *testing.T) {
	// Candidate declares react, project requires javascript.
	got := SkillsMatchScore([]string{"react"}, []string{"javascript"})
	assert.Equal(t, 100.0, got)

	// Half of the required skills covered.
	got = SkillsMatchScore([]string{"react"}, []string{"javascript", "python"})
	assert.Equal(t, 50.0, got)

	// No required skills means no signal, not full marks.
	assert.Equal(t, 0.0, SkillsMatchScore([]string{"react"}, nil))
}

func TestProjectQueryBoost(t *testing.T) {
	p := marketingProject()

	t.Run("title, category and description all match", func(t *testing.T) {
		got := ProjectQueryBoost(p, "instagram campaign for marketing brand")
		assert.Equal(t, 50.0, got)
	})

	t.Run("description only", func(t *testing.T) {
		got := ProjectQueryBoost(p, "presence online")
		assert.Equal(t, 10.0, got)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, 0.0, ProjectQueryBoost(p, "   "))
	})
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "business-development", normalizeCategory("  Business Development "))
	assert.Equal(t, "marketing", normalizeCategory("Marketing"))
}
