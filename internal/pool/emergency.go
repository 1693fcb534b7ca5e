// internal/pool/emergency.go
package pool

import (
	"context"
	"fmt"

	"talent-match/internal/common/config"
	"talent-match/internal/models"
)

// EmergencyStage is the last resort: recently active, complete profiles
// regardless of query content, so a search never comes back empty just
// because the filters missed.
type EmergencyStage struct {
	repo *CandidateRepository
	cfg  config.PoolConfig
}

func NewEmergencyStage(repo *CandidateRepository, cfg config.PoolConfig) *EmergencyStage {
	return &EmergencyStage{repo: repo, cfg: cfg}
}

func (s *EmergencyStage) Name() string { return "emergency" }

func (s *EmergencyStage) Fetch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	where := fmt.Sprintf(`profile_completed = true AND (
		last_active_at > NOW() - INTERVAL '%d days'
		OR applications_this_month > 0
		OR updated_at > NOW() - INTERVAL '%d days'
		OR created_at > NOW() - INTERVAL '%d days')`,
		s.cfg.ActiveWindowDays, s.cfg.UpdatedWindowDays, s.cfg.CreatedWindowDays)

	return s.repo.Query(ctx, where,
		"last_active_at DESC NULLS LAST, updated_at DESC",
		s.cfg.EmergencyLimit,
	)
}
