// internal/shortlist/service.go
package shortlist

import (
	"context"
	"sort"
	"time"

	"talent-match/internal/common/config"
	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/common/logger"
	"talent-match/internal/common/metrics"
	"talent-match/internal/models"
	"talent-match/internal/ranking"
	"talent-match/internal/scoring"
)

const lockTTL = 5 * time.Minute

// ProjectStore is the persistence surface the service needs.
type ProjectStore interface {
	Project(ctx context.Context, projectID string) (*models.Opportunity, error)
	Applications(ctx context.Context, projectID string) ([]models.Application, error)
	MarkShortlisted(ctx context.Context, applicationID string, rank int, score float64, at time.Time) error
	ResetShortlist(ctx context.Context, projectID string) error
}

// CandidateLoader resolves applicant profiles.
type CandidateLoader interface {
	ByIDs(ctx context.Context, ids []string) ([]models.Candidate, error)
}

// Locker is the idempotency guard around concurrent generation attempts.
type Locker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// Entry is one shortlisted application in rank order.
type Entry struct {
	ApplicationID string    `json:"applicationId"`
	CandidateID   string    `json:"candidateId"`
	Rank          int       `json:"rank"`
	Score         float64   `json:"score"`
	ShortlistedAt time.Time `json:"shortlistedAt"`
}

// Result reports what a generation attempt did. Re-running against a
// completed shortlist returns the stored entries unchanged.
type Result struct {
	ProjectID       string  `json:"projectId"`
	Generated       bool    `json:"generated"`
	AlreadyComplete bool    `json:"alreadyComplete"`
	InProgress      bool    `json:"inProgress"`
	Reason          string  `json:"reason,omitempty"`
	Entries         []Entry `json:"entries"`
}

// Eligibility reports whether a project can be auto-shortlisted, without
// attempting generation.
type Eligibility struct {
	ProjectID        string `json:"projectId"`
	ApplicationCount int    `json:"applicationCount"`
	ShortlistedCount int    `json:"shortlistedCount"`
	Eligible         bool   `json:"eligible"`
	RemainingNeeded  int    `json:"remainingNeeded"`
}

// Service generates the automatic top-N shortlist for a project once its
// application count crosses the threshold.
type Service struct {
	store      ProjectStore
	candidates CandidateLoader
	locks      Locker
	engine     *ranking.Engine
	cfg        config.ShortlistConfig
	logger     logger.Logger
	now        func() time.Time
}

func NewService(store ProjectStore, candidates CandidateLoader, locks Locker, engine *ranking.Engine, cfg config.ShortlistConfig, log logger.Logger) *Service {
	return &Service{
		store:      store,
		candidates: candidates,
		locks:      locks,
		engine:     engine,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

// Generate builds the shortlist. Idempotent: a project whose shortlist is
// already complete gets the stored entries back, a concurrent attempt is
// rejected via the lock, and partial shortlists (manual picks) are only
// topped up to N.
func (s *Service) Generate(ctx context.Context, projectID string) (*Result, error) {
	project, err := s.store.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	apps, err := s.store.Applications(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewShortlistFailedError(projectID, err)
	}

	existing := shortlistedEntries(apps)
	if len(existing) >= s.cfg.TopN {
		metrics.ShortlistsGenerated.WithLabelValues("already_complete").Inc()
		return &Result{ProjectID: projectID, AlreadyComplete: true, Entries: existing}, nil
	}

	if len(apps) < s.cfg.MinApplications {
		metrics.ShortlistsGenerated.WithLabelValues("below_threshold").Inc()
		return &Result{
			ProjectID: projectID,
			Reason:    "application count below auto-shortlist threshold",
			Entries:   existing,
		}, nil
	}

	acquired, err := s.locks.SetNX(ctx, lockKey(projectID), s.now().Unix(), lockTTL)
	if err != nil {
		// A broken lock store must not block shortlisting; proceed and rely
		// on the DB-state idempotency check above.
		s.logger.WithError(err).Warn("shortlist lock unavailable, proceeding without it", nil)
	} else if !acquired {
		metrics.ShortlistsGenerated.WithLabelValues("in_progress").Inc()
		return &Result{ProjectID: projectID, InProgress: true, Entries: existing}, nil
	}
	defer func() {
		if err := s.locks.Del(context.WithoutCancel(ctx), lockKey(projectID)); err != nil {
			s.logger.WithError(err).Debug("failed to release shortlist lock", nil)
		}
	}()

	entries, err := s.fillShortlist(ctx, project, apps, existing)
	if err != nil {
		metrics.ShortlistsGenerated.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.ShortlistsGenerated.WithLabelValues("generated").Inc()
	s.logger.Info("auto-shortlist generated", map[string]interface{}{
		"projectId": projectID,
		"selected":  len(entries) - len(existing),
		"total":     len(entries),
	})

	return &Result{ProjectID: projectID, Generated: true, Entries: entries}, nil
}

// Eligibility counts a project's applications against the auto-shortlist
// threshold and reports how many more are needed.
func (s *Service) Eligibility(ctx context.Context, projectID string) (*Eligibility, error) {
	if _, err := s.store.Project(ctx, projectID); err != nil {
		return nil, err
	}

	apps, err := s.store.Applications(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewShortlistFailedError(projectID, err)
	}

	e := &Eligibility{
		ProjectID:        projectID,
		ApplicationCount: len(apps),
		ShortlistedCount: len(shortlistedEntries(apps)),
		Eligible:         len(apps) >= s.cfg.MinApplications,
	}
	if !e.Eligible {
		e.RemainingNeeded = s.cfg.MinApplications - len(apps)
	}
	return e, nil
}

// Reset clears auto-shortlist state so a company can redo its selection.
func (s *Service) Reset(ctx context.Context, projectID string) error {
	if err := s.store.ResetShortlist(ctx, projectID); err != nil {
		return apperrors.NewShortlistFailedError(projectID, err)
	}
	if err := s.locks.Del(ctx, lockKey(projectID)); err != nil {
		s.logger.WithError(err).Debug("failed to clear shortlist lock on reset", nil)
	}
	return nil
}

// fillShortlist scores pending applications and promotes the best until
// the shortlist holds TopN entries, existing manual picks included.
func (s *Service) fillShortlist(ctx context.Context, project *models.Opportunity, apps []models.Application, existing []Entry) ([]Entry, error) {
	pending := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == models.ApplicationPending {
			pending = append(pending, a)
		}
	}

	profiles, err := s.loadProfiles(ctx, pending)
	if err != nil {
		return nil, apperrors.NewShortlistFailedError(project.ID, err)
	}

	type scored struct {
		app   models.Application
		score float64
	}

	now := s.now()
	weights := s.engine.Weights(models.ModeShortlist, false)

	scoredApps := make([]scored, 0, len(pending))
	for _, app := range pending {
		score := float64(s.cfg.DefaultScore)
		if c, ok := profiles[app.UserID]; ok {
			sub := &models.SubScores{
				Profile:     scoring.RelevanceScore(&c, queryFromProject(project)),
				Skills:      scoring.SkillsMatchScore(c.Skills, project.SkillsRequired),
				Project:     scoring.ProjectAlignmentScore(&c, project),
				Application: scoring.ApplicationQualityScore(&app, now),
			}
			score = s.engine.Blend(sub, weights)
		} else {
			s.logger.Warn("applicant profile missing, using default score", map[string]interface{}{
				"applicationId": app.ID,
				"candidateId":   app.UserID,
			})
		}
		scoredApps = append(scoredApps, scored{app: app, score: score})
	}

	// Stable sort keeps earlier applications ahead on equal scores.
	sort.SliceStable(scoredApps, func(i, j int) bool {
		return scoredApps[i].score > scoredApps[j].score
	})

	entries := append([]Entry{}, existing...)
	remaining := s.cfg.TopN - len(existing)
	for i := 0; i < remaining && i < len(scoredApps); i++ {
		rank := len(existing) + i + 1
		sa := scoredApps[i]

		if err := s.store.MarkShortlisted(ctx, sa.app.ID, rank, sa.score, now); err != nil {
			return nil, apperrors.NewShortlistFailedError(project.ID, err)
		}
		entries = append(entries, Entry{
			ApplicationID: sa.app.ID,
			CandidateID:   sa.app.UserID,
			Rank:          rank,
			Score:         sa.score,
			ShortlistedAt: now,
		})
	}
	return entries, nil
}

func (s *Service) loadProfiles(ctx context.Context, apps []models.Application) (map[string]models.Candidate, error) {
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.UserID)
	}

	candidates, err := s.candidates.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	return byID, nil
}

func shortlistedEntries(apps []models.Application) []Entry {
	var entries []Entry
	for _, a := range apps {
		if a.Status != models.ApplicationShortlisted {
			continue
		}
		e := Entry{ApplicationID: a.ID, CandidateID: a.UserID, Rank: a.ShortlistRank}
		if a.CompatibilityScore != nil {
			e.Score = *a.CompatibilityScore
		}
		if a.ShortlistedAt != nil {
			e.ShortlistedAt = *a.ShortlistedAt
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
	return entries
}

func queryFromProject(p *models.Opportunity) *models.SearchQuery {
	return &models.SearchQuery{
		Raw:    p.Title + " " + p.Description,
		Skills: p.SkillsRequired,
	}
}

func lockKey(projectID string) string {
	return "shortlist:lock:" + projectID
}
