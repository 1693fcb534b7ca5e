// internal/pool/strict.go
package pool

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/common/config"
	"talent-match/internal/models"

	"github.com/lib/pq"
)

// StrictStage is the first SQL fallback: candidates must show a base
// profile signal (any of university, major, bio, skills or interests
// present) AND satisfy every extracted filter category (AND across
// categories, ANY within a category). It only applies when the query
// produced structured filters.
type StrictStage struct {
	repo *CandidateRepository
	cfg  config.PoolConfig
}

func NewStrictStage(repo *CandidateRepository, cfg config.PoolConfig) *StrictStage {
	return &StrictStage{repo: repo, cfg: cfg}
}

func (s *StrictStage) Name() string { return "strict" }

func (s *StrictStage) Fetch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	if !q.HasFilters() {
		return nil, nil
	}

	conditions := []string{
		"(university IS NOT NULL OR major IS NOT NULL OR bio IS NOT NULL" +
			" OR COALESCE(array_length(skills, 1), 0) > 0 OR COALESCE(array_length(interests, 1), 0) > 0)",
	}
	var args []interface{}

	if len(q.Universities) > 0 {
		args = append(args, pq.Array(likePatterns(q.Universities)))
		conditions = append(conditions, fmt.Sprintf("university ILIKE ANY($%d)", len(args)))
	}
	if len(q.Majors) > 0 {
		args = append(args, pq.Array(likePatterns(q.Majors)))
		conditions = append(conditions, fmt.Sprintf("(major ILIKE ANY($%d) OR subjects ILIKE ANY($%d))", len(args), len(args)))
	}
	if len(q.Skills) > 0 {
		args = append(args, pq.Array(likePatterns(q.Skills)))
		conditions = append(conditions, fmt.Sprintf(
			"array_to_string(skills || interests || goals, ' ') ILIKE ANY($%d)", len(args)))
	}

	return s.repo.Query(ctx,
		strings.Join(conditions, " AND "),
		"last_active_at DESC NULLS LAST",
		s.cfg.StrictLimit,
		args...,
	)
}
