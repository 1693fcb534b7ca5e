// internal/gating/gate_test.go
package gating

import (
	"context"
	"errors"
	"strings"
	"testing"

	"talent-match/internal/common/config"
	"talent-match/internal/common/logger"
	"talent-match/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubs struct {
	sub *models.Subscription
	err error
}

func (s stubSubs) ActiveSubscription(ctx context.Context, companyID string) (*models.Subscription, error) {
	return s.sub, s.err
}

func testTiersConfig() config.TiersConfig {
	return config.TiersConfig{
		Limits: map[string]config.TierLimit{
			"free":         {MaxResults: 5, Visibility: "shortlisted_only"},
			"professional": {MaxResults: 20, Visibility: "full_pool"},
			"enterprise":   {MaxResults: 50, Visibility: "complete_transparency"},
		},
		Credits: config.CreditConfig{QuintileCosts: []int{5, 4, 3, 2, 1}},
	}
}

func makeResults(n int) []models.MatchResult {
	results := make([]models.MatchResult, n)
	for i := range results {
		results[i] = models.MatchResult{
			CandidateID:  string(rune('a' + i)),
			OverallScore: float64(100 - i),
			Candidate: &models.Candidate{
				ID:       string(rune('a' + i)),
				Email:    "x@example.com",
				LinkedIn: "linkedin.com/in/x",
				Bio:      strings.Repeat("long bio text ", 30),
				Major:    "Marketing",
			},
			SubScores: models.SubScores{Activity: 80, Application: 80},
		}
	}
	return results
}

func subscription(plan models.Tier, valid bool) *models.Subscription {
	return &models.Subscription{CompanyID: "co1", Plan: plan, IsValid: valid}
}

func TestGateTruncatesToTierLimit(t *testing.T) {
	g := NewGate(testTiersConfig(), stubSubs{sub: subscription(models.TierFree, true)}, logger.NewNoOpLogger())

	out, err := g.Apply(context.Background(), "co1", makeResults(12))

	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestGateVisibilityLevels(t *testing.T) {
	t.Run("shortlisted_only redacts contact and truncates bio", func(t *testing.T) {
		g := NewGate(testTiersConfig(), stubSubs{sub: subscription(models.TierFree, true)}, logger.NewNoOpLogger())

		out, err := g.Apply(context.Background(), "co1", makeResults(3))

		require.NoError(t, err)
		for _, r := range out {
			assert.False(t, r.ContactRevealed)
			assert.Empty(t, r.Candidate.Email)
			assert.Empty(t, r.Candidate.LinkedIn)
			assert.LessOrEqual(t, len(r.Candidate.Bio), bioPreviewChars+3)
			assert.True(t, strings.HasSuffix(r.Candidate.Bio, "..."))
			assert.Greater(t, r.CreditCost, 0)
		}
	})

	t.Run("full_pool reveals contact without insight", func(t *testing.T) {
		g := NewGate(testTiersConfig(), stubSubs{sub: subscription(models.TierProfessional, true)}, logger.NewNoOpLogger())

		out, err := g.Apply(context.Background(), "co1", makeResults(3))

		require.NoError(t, err)
		for _, r := range out {
			assert.True(t, r.ContactRevealed)
			assert.NotEmpty(t, r.Candidate.Email)
			assert.Empty(t, r.AIInsight)
			assert.Zero(t, r.CreditCost)
		}
	})

	t.Run("complete_transparency adds insight", func(t *testing.T) {
		g := NewGate(testTiersConfig(), stubSubs{sub: subscription(models.TierEnterprise, true)}, logger.NewNoOpLogger())

		out, err := g.Apply(context.Background(), "co1", makeResults(2))

		require.NoError(t, err)
		assert.True(t, out[0].ContactRevealed)
		assert.Contains(t, out[0].AIInsight, "Exceptional match")
		assert.Contains(t, out[0].AIInsight, "Marketing")
	})
}

func TestGateDegradesToFreeTier(t *testing.T) {
	tests := []struct {
		name string
		subs SubscriptionReader
	}{
		{"lookup error", stubSubs{err: errors.New("db down")}},
		{"no subscription row", stubSubs{}},
		{"expired subscription", stubSubs{sub: subscription(models.TierEnterprise, false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate(testTiersConfig(), tt.subs, logger.NewNoOpLogger())

			out, err := g.Apply(context.Background(), "co1", makeResults(8))

			require.NoError(t, err, "gate failures must degrade, not fail the search")
			assert.Len(t, out, 5)
			assert.False(t, out[0].ContactRevealed)
		})
	}
}

func TestCreditCostQuintiles(t *testing.T) {
	g := NewGate(testTiersConfig(), stubSubs{}, logger.NewNoOpLogger())

	// Ten results over five quintile prices: two per bucket.
	total := 10
	wantByRank := []int{5, 5, 4, 4, 3, 3, 2, 2, 1, 1}
	for rank, want := range wantByRank {
		assert.Equal(t, want, g.creditCost(rank, total), "rank %d", rank)
	}
}

func TestCreditCostEmptyTable(t *testing.T) {
	cfg := testTiersConfig()
	cfg.Credits.QuintileCosts = nil
	g := NewGate(cfg, stubSubs{}, logger.NewNoOpLogger())

	assert.Zero(t, g.creditCost(0, 10))
}
