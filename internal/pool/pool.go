// internal/pool/pool.go
package pool

import (
	"context"

	"talent-match/internal/common/logger"
	"talent-match/internal/common/metrics"
	"talent-match/internal/models"
)

// Stage is one step of the retrieval cascade. A stage that cannot apply to
// the query (no vectors, no filters) returns an empty slice and nil error.
type Stage interface {
	Name() string
	Fetch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error)
}

// Result is the outcome of a cascade run: the pool plus the name of the
// stage that produced it.
type Result struct {
	Candidates []models.Candidate
	Stage      string
}

// Builder runs stages in declared order and stops at the first stage that
// yields a non-empty pool. Stage errors degrade to a fall-through to the
// next stage rather than failing the whole search.
type Builder struct {
	stages []Stage
	logger logger.Logger
}

func NewBuilder(log logger.Logger, stages ...Stage) *Builder {
	return &Builder{stages: stages, logger: log}
}

// Build executes the cascade. An all-empty cascade returns a Result with
// Stage "none" and no error; the caller decides how to surface that.
func (b *Builder) Build(ctx context.Context, q *models.SearchQuery) (*Result, error) {
	for _, stage := range b.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := stage.Fetch(ctx, q)
		if err != nil {
			b.logger.WithError(err).Warn("retrieval stage failed, falling through", map[string]interface{}{
				"stage": stage.Name(),
			})
			continue
		}
		if len(candidates) == 0 {
			b.logger.Debug("retrieval stage empty, falling through", map[string]interface{}{
				"stage": stage.Name(),
			})
			continue
		}

		metrics.SearchStageSatisfied.WithLabelValues(stage.Name()).Inc()
		b.logger.Info("candidate pool built", map[string]interface{}{
			"stage":    stage.Name(),
			"poolSize": len(candidates),
		})

		return &Result{Candidates: candidates, Stage: stage.Name()}, nil
	}

	metrics.SearchStageSatisfied.WithLabelValues("none").Inc()
	return &Result{Stage: "none"}, nil
}
