// internal/pool/relaxed.go
package pool

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/common/config"
	"talent-match/internal/models"

	"github.com/lib/pq"
)

// RelaxedStage widens the strict stage: OR across filter categories, no
// activity requirement, bigger cap. Still filter-driven, so it also skips
// filterless queries.
type RelaxedStage struct {
	repo *CandidateRepository
	cfg  config.PoolConfig
}

func NewRelaxedStage(repo *CandidateRepository, cfg config.PoolConfig) *RelaxedStage {
	return &RelaxedStage{repo: repo, cfg: cfg}
}

func (s *RelaxedStage) Name() string { return "relaxed" }

func (s *RelaxedStage) Fetch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	if !q.HasFilters() {
		return nil, nil
	}

	var conditions []string
	var args []interface{}

	if len(q.Universities) > 0 {
		args = append(args, pq.Array(likePatterns(q.Universities)))
		conditions = append(conditions, fmt.Sprintf("university ILIKE ANY($%d)", len(args)))
	}
	if len(q.Majors) > 0 {
		args = append(args, pq.Array(likePatterns(q.Majors)))
		conditions = append(conditions, fmt.Sprintf("(major ILIKE ANY($%d) OR subjects ILIKE ANY($%d) OR bio ILIKE ANY($%d))", len(args), len(args), len(args)))
	}
	if len(q.Skills) > 0 {
		args = append(args, pq.Array(likePatterns(q.Skills)))
		conditions = append(conditions, fmt.Sprintf(
			"array_to_string(skills || interests || goals, ' ') ILIKE ANY($%d)", len(args)))
	}

	return s.repo.Query(ctx,
		"("+strings.Join(conditions, " OR ")+")",
		"profile_completed DESC, last_active_at DESC NULLS LAST",
		s.cfg.RelaxedLimit,
		args...,
	)
}
