// internal/embedding/generator.go
package embedding

import (
	"context"
	"time"

	"talent-match/internal/common/config"
	"talent-match/internal/common/logger"
	"talent-match/internal/models"
)

// Generator produces candidate and query vectors via the external
// embedding provider. Persistence is a separate explicit store step.
type Generator struct {
	provider Provider
	version  string
	logger   logger.Logger
}

func NewGenerator(provider Provider, cfg config.EmbeddingConfig, log logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		version:  cfg.Version,
		logger:   log.WithFields(map[string]interface{}{"component": "embedding-generator"}),
	}
}

// Version returns the generator version tag stored alongside vectors.
func (g *Generator) Version() string {
	return g.version
}

// GenerateCandidate builds the three embeddings for one candidate.
// A provider error on any projection fails the whole generation; callers
// treat a failed result as "no vector available".
func (g *Generator) GenerateCandidate(ctx context.Context, c *models.Candidate) (*models.CandidateVector, error) {
	profile, err := g.provider.Embed(ctx, ProfileText(c))
	if err != nil {
		return nil, err
	}

	skills, err := g.provider.Embed(ctx, SkillsText(c))
	if err != nil {
		return nil, err
	}

	academic, err := g.provider.Embed(ctx, AcademicText(c))
	if err != nil {
		return nil, err
	}

	return &models.CandidateVector{
		CandidateID:    c.ID,
		ProfileVector:  profile,
		SkillsVector:   skills,
		AcademicVector: academic,
		Version:        g.version,
		UpdatedAt:      time.Now().UTC(),
	}, nil
}

// GenerateQuery embeds the domain-enhanced form of a search prompt.
func (g *Generator) GenerateQuery(ctx context.Context, raw string) ([]float64, error) {
	return g.provider.Embed(ctx, EnhanceQuery(raw))
}

// RefreshStale regenerates vectors for every candidate whose stored vector
// is missing, outdated or version-mismatched. Failures are logged and
// skipped so one bad profile doesn't stall the sweep; per-item pacing
// keeps the provider under its rate limit.
func (g *Generator) RefreshStale(ctx context.Context, store *Store, candidates []models.Candidate) (int, error) {
	refreshed := 0
	for i := range candidates {
		c := &candidates[i]

		existing, err := store.Get(ctx, c.ID)
		if err != nil {
			g.logger.Warn("vector lookup failed, regenerating", map[string]interface{}{
				"candidateId": c.ID,
				"error":       err.Error(),
			})
		}
		if existing != nil && !store.NeedsRefresh(existing, c, g.version) {
			continue
		}

		vec, err := g.GenerateCandidate(ctx, c)
		if err != nil {
			g.logger.Warn("embedding generation failed", map[string]interface{}{
				"candidateId": c.ID,
				"error":       err.Error(),
			})
			continue
		}

		if err := store.Upsert(ctx, vec); err != nil {
			g.logger.Error("vector upsert failed", map[string]interface{}{
				"candidateId": c.ID,
				"error":       err.Error(),
			})
			continue
		}
		refreshed++

		if i < len(candidates)-1 {
			select {
			case <-ctx.Done():
				return refreshed, ctx.Err()
			case <-time.After(200 * time.Millisecond):
			}
		}
	}

	g.logger.Info("vector refresh sweep completed", map[string]interface{}{
		"candidates": len(candidates),
		"refreshed":  refreshed,
	})
	return refreshed, nil
}
