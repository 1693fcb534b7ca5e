// internal/search/service.go
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"talent-match/internal/common/config"
	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/common/logger"
	"talent-match/internal/common/metrics"
	"talent-match/internal/common/observability"
	"talent-match/internal/embedding"
	"talent-match/internal/models"
	"talent-match/internal/pool"
	"talent-match/internal/ranking"
	"talent-match/internal/scoring"

	"github.com/google/uuid"
)

// QueryEmbedder turns a prompt into a query vector.
type QueryEmbedder interface {
	GenerateQuery(ctx context.Context, raw string) ([]float64, error)
}

// VectorSource lists stored candidate vectors for similarity scoring.
type VectorSource interface {
	GetAll(ctx context.Context) ([]models.CandidateVector, error)
}

// PoolBuilder runs the retrieval cascade.
type PoolBuilder interface {
	Build(ctx context.Context, q *models.SearchQuery) (*pool.Result, error)
}

// Gater applies subscription limits to the ranked output.
type Gater interface {
	Apply(ctx context.Context, companyID string, results []models.MatchResult) ([]models.MatchResult, error)
}

// Request is one search invocation.
type Request struct {
	Query     string
	CompanyID string
	Mode      models.SearchMode
	Project   *models.Opportunity
}

// Service orchestrates a search: query understanding, pool building,
// concurrent scoring, blending, ranking and tier gating. Embedding
// failures degrade to rule-based scoring, they never fail the search.
type Service struct {
	embedder QueryEmbedder
	vectors  VectorSource
	builder  PoolBuilder
	engine   *ranking.Engine
	gate     Gater
	obs      *observability.Observability
	cfg      config.MatchingConfig
	logger   logger.Logger
	now      func() time.Time
}

func NewService(
	embedder QueryEmbedder,
	vectors VectorSource,
	builder PoolBuilder,
	engine *ranking.Engine,
	gate Gater,
	obs *observability.Observability,
	cfg config.MatchingConfig,
	log logger.Logger,
) *Service {
	return &Service{
		embedder: embedder,
		vectors:  vectors,
		builder:  builder,
		engine:   engine,
		gate:     gate,
		obs:      obs,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

// Search runs the full pipeline and returns ranked, gated results.
func (s *Service) Search(ctx context.Context, req Request) (*models.RankedResults, error) {
	start := s.now()

	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.NewValidationError("query must not be empty")
	}
	if req.CompanyID == "" {
		return nil, apperrors.NewValidationError("companyId is required")
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeSearch
	}

	requestID := uuid.NewString()
	log := s.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"mode":      string(mode),
	})

	q := &models.SearchQuery{
		Raw:       req.Query,
		CompanyID: req.CompanyID,
		Project:   req.Project,
	}
	pool.ExtractFilters(q)

	q.QueryVector = s.embedQuery(ctx, log, req.Query)
	vectorsUsed := len(q.QueryVector) > 0

	poolResult, err := s.builder.Build(ctx, q)
	if err != nil {
		return nil, err
	}

	metadata := models.SearchMetadata{
		RequestID:      requestID,
		Mode:           string(mode),
		PoolSize:       len(poolResult.Candidates),
		RetrievalStage: poolResult.Stage,
		VectorsUsed:    vectorsUsed,
	}
	if !vectorsUsed {
		metadata.Threshold = s.cfg.RelevanceFirst.MinOverallScore
	}

	if len(poolResult.Candidates) == 0 {
		log.Info("search produced empty pool", map[string]interface{}{"query": req.Query})
		s.record(ctx, mode, poolResult.Stage, start)
		metadata.ProcessingMs = s.now().Sub(start).Milliseconds()
		return &models.RankedResults{
			Metadata:    metadata,
			Suggestions: emptyPoolSuggestions(q),
		}, nil
	}

	vectorsByID := s.loadVectors(ctx, log, vectorsUsed)

	results := s.scorePool(ctx, poolResult.Candidates, q, vectorsByID, mode)
	if !vectorsUsed {
		results = s.admitByRelevanceFloor(results)
	}

	s.engine.Rank(results, vectorsUsed)
	s.engine.Finalize(results, q, vectorsUsed)

	results, err = s.gate.Apply(ctx, req.CompanyID, results)
	if err != nil {
		return nil, err
	}

	s.record(ctx, mode, poolResult.Stage, start)
	metadata.ProcessingMs = s.now().Sub(start).Milliseconds()

	log.Info("search completed", map[string]interface{}{
		"poolSize":    metadata.PoolSize,
		"returned":    len(results),
		"stage":       metadata.RetrievalStage,
		"vectorsUsed": vectorsUsed,
	})

	return &models.RankedResults{Results: results, Metadata: metadata}, nil
}

// embedQuery attempts query embedding; any failure means vectorless mode.
func (s *Service) embedQuery(ctx context.Context, log logger.Logger, raw string) []float64 {
	if s.embedder == nil {
		return nil
	}
	vec, err := s.embedder.GenerateQuery(ctx, raw)
	if err != nil {
		log.WithError(err).Warn("query embedding failed, falling back to rule-based scoring", nil)
		return nil
	}
	return vec
}

func (s *Service) loadVectors(ctx context.Context, log logger.Logger, vectorsUsed bool) map[string]models.CandidateVector {
	if !vectorsUsed || s.vectors == nil {
		return nil
	}

	vectors, err := s.vectors.GetAll(ctx)
	if err != nil {
		log.WithError(err).Warn("vector store read failed, scoring rule-based", nil)
		return nil
	}

	byID := make(map[string]models.CandidateVector, len(vectors))
	for _, v := range vectors {
		byID[v.CandidateID] = v
	}
	return byID
}

// scorePool scores candidates concurrently under the configured limit.
// Results are written by index, so no mutex is needed.
func (s *Service) scorePool(ctx context.Context, candidates []models.Candidate, q *models.SearchQuery, vectorsByID map[string]models.CandidateVector, mode models.SearchMode) []models.MatchResult {
	concurrency := s.cfg.ScoringConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]models.MatchResult, len(candidates))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	now := s.now()
	for i := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			c := &candidates[i]
			var vec *models.CandidateVector
			if v, ok := vectorsByID[c.ID]; ok {
				vec = &v
			}
			results[i] = s.scoreCandidate(c, q, vec, mode, now)
		}(i)
	}
	wg.Wait()

	return results
}

// scoreCandidate computes sub-scores and the raw overall score for one
// candidate. A candidate without a usable vector inside a vector search is
// scored by the rule-based path like everyone else in a vectorless search.
func (s *Service) scoreCandidate(c *models.Candidate, q *models.SearchQuery, vec *models.CandidateVector, mode models.SearchMode, now time.Time) models.MatchResult {
	sub := models.SubScores{
		Relevance: scoring.RelevanceScore(c, q),
		Activity:  scoring.ActivityScore(c, now),
	}
	if q.Project != nil {
		sub.Project = scoring.ProjectAlignmentScore(c, q.Project)
	}

	if len(q.QueryVector) > 0 && vec != nil {
		if sim, err := embedding.CosineSimilarity(q.QueryVector, vec.ProfileVector); err == nil {
			sub.VectorSimilarity = &sim
			sub.Profile = similarityToScore(sim)
		}
		if sim, err := embedding.CosineSimilarity(q.QueryVector, vec.SkillsVector); err == nil {
			sub.Skills = similarityToScore(sim)
		}
		if sim, err := embedding.CosineSimilarity(q.QueryVector, vec.AcademicVector); err == nil {
			sub.Academic = similarityToScore(sim)
		}
	}

	var overall float64
	if sub.VectorSimilarity != nil {
		overall = s.engine.Blend(&sub, s.engine.Weights(mode, true))
	} else {
		sub.Profile = sub.Relevance
		sub.Skills = scoring.SkillsMatchScore(c.Skills, q.Skills)
		proxy := s.engine.Blend(&sub, s.engine.Weights(mode, false))
		overall = s.engine.RelevanceFirstOverall(sub.Relevance, proxy, sub.Activity)
	}

	return models.MatchResult{
		CandidateID:  c.ID,
		Candidate:    c,
		SubScores:    sub,
		OverallScore: overall,
	}
}

// admitByRelevanceFloor drops vectorless results below the minimum
// admission score.
func (s *Service) admitByRelevanceFloor(results []models.MatchResult) []models.MatchResult {
	admitted := results[:0]
	for _, r := range results {
		if s.engine.MeetsRelevanceFloor(r.OverallScore) {
			admitted = append(admitted, r)
		}
	}
	return admitted
}

func (s *Service) record(ctx context.Context, mode models.SearchMode, stage string, start time.Time) {
	metrics.SearchesTotal.WithLabelValues(string(mode)).Inc()
	metrics.SearchDuration.WithLabelValues(string(mode)).Observe(s.now().Sub(start).Seconds())
	if s.obs != nil {
		s.obs.RecordSearch(ctx, string(mode), stage)
		s.obs.RecordSearchDuration(ctx, s.now().Sub(start), string(mode))
	}
}

// emptyPoolSuggestions explains why nothing matched and what to loosen.
func emptyPoolSuggestions(q *models.SearchQuery) []string {
	suggestions := []string{
		"Try broader terms, for example a field of study instead of a specific skill",
	}
	if len(q.Universities) > 0 {
		suggestions = append(suggestions, "Remove the university requirement to widen the pool")
	}
	if len(q.Skills) > 1 {
		suggestions = append(suggestions, "Require fewer skills at once")
	}
	if !q.HasFilters() {
		suggestions = append(suggestions, "Mention a major, skill or university so filters can apply")
	}
	return suggestions
}

func similarityToScore(sim float64) float64 {
	return (sim + 1) / 2 * 100
}
