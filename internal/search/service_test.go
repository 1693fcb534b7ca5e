// internal/search/service_test.go
package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-match/internal/common/config"
	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/common/logger"
	"talent-match/internal/models"
	"talent-match/internal/pool"
	"talent-match/internal/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector []float64
	err    error
}

func (f fakeEmbedder) GenerateQuery(ctx context.Context, raw string) ([]float64, error) {
	return f.vector, f.err
}

type fakeVectors struct {
	vectors []models.CandidateVector
	err     error
}

func (f fakeVectors) GetAll(ctx context.Context) ([]models.CandidateVector, error) {
	return f.vectors, f.err
}

type fakeBuilder struct {
	result *pool.Result
	err    error
}

func (f fakeBuilder) Build(ctx context.Context, q *models.SearchQuery) (*pool.Result, error) {
	return f.result, f.err
}

type passGate struct{}

func (passGate) Apply(ctx context.Context, companyID string, results []models.MatchResult) ([]models.MatchResult, error) {
	return results, nil
}

func testMatchingConfig() config.MatchingConfig {
	return config.MatchingConfig{
		SearchWithVectors:  config.BlendWeights{Vector: 0.50, Profile: 0.25, Skills: 0.25},
		SearchNoVectors:    config.BlendWeights{Profile: 0.40, Skills: 0.40, Project: 0.20},
		ShortlistNoVectors: config.BlendWeights{Profile: 0.30, Skills: 0.30, Project: 0.25, Application: 0.15},
		RelevanceFirst: config.RelevanceFirstConfig{
			RelevanceWeight: 0.60,
			ProxyWeight:     0.25,
			ActivityWeight:  0.15,
			MinOverallScore: 40,
			DominanceMargin: 10,
		},
		ScoringConcurrency: 4,
	}
}

func newTestService(embedder QueryEmbedder, vectors VectorSource, builder PoolBuilder) *Service {
	cfg := testMatchingConfig()
	return NewService(embedder, vectors, builder, ranking.NewEngine(cfg), passGate{}, nil, cfg, logger.NewNoOpLogger())
}

func activeCandidate(id, major string, skills ...string) models.Candidate {
	now := time.Now()
	lastActive := now.Add(-24 * time.Hour)
	return models.Candidate{
		ID:                    id,
		Name:                  "Candidate " + id,
		Major:                 major,
		Bio:                   "Student profile with real interests",
		University:            "Zayed University",
		Skills:                skills,
		ProfileCompleted:      true,
		LastActiveAt:          &lastActive,
		ApplicationsThisMonth: 3,
		TotalApplications:     8,
		CreatedAt:             now.AddDate(0, -3, 0),
		UpdatedAt:             now,
	}
}

func TestSearchValidation(t *testing.T) {
	svc := newTestService(fakeEmbedder{}, fakeVectors{}, fakeBuilder{})

	tests := []struct {
		name string
		req  Request
	}{
		{"empty query", Request{CompanyID: "co1"}},
		{"whitespace query", Request{Query: "   ", CompanyID: "co1"}},
		{"missing company", Request{Query: "marketing students"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.req)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, apperrors.CodeOf(err))
		})
	}
}

func TestSearchEmptyPoolReturnsSuggestions(t *testing.T) {
	svc := newTestService(
		fakeEmbedder{err: errors.New("provider down")},
		fakeVectors{},
		fakeBuilder{result: &pool.Result{Stage: "none"}},
	)

	got, err := svc.Search(context.Background(), Request{Query: "quantum basket weaving", CompanyID: "co1"})

	require.NoError(t, err, "an empty pool is an answer, not an error")
	assert.Empty(t, got.Results)
	assert.NotEmpty(t, got.Suggestions)
	assert.Equal(t, "none", got.Metadata.RetrievalStage)
	assert.False(t, got.Metadata.VectorsUsed)
	assert.NotEmpty(t, got.Metadata.RequestID)
}

func TestSearchVectorlessFallback(t *testing.T) {
	strong := activeCandidate("c1", "Marketing", "social media", "content creation")
	weak := activeCandidate("c2", "Mechanical Engineering")
	weak.Bio = ""
	weak.University = ""
	weak.LastActiveAt = nil
	weak.ApplicationsThisMonth = 0
	weak.TotalApplications = 0
	weak.ProfileCompleted = false

	svc := newTestService(
		fakeEmbedder{err: errors.New("provider down")},
		fakeVectors{},
		fakeBuilder{result: &pool.Result{Stage: "strict", Candidates: []models.Candidate{weak, strong}}},
	)

	got, err := svc.Search(context.Background(), Request{
		Query:     "marketing students with social media skills",
		CompanyID: "co1",
	})

	require.NoError(t, err)
	assert.False(t, got.Metadata.VectorsUsed)
	assert.Equal(t, 40.0, got.Metadata.Threshold)

	// The irrelevant candidate falls below the admission floor.
	require.Len(t, got.Results, 1)
	assert.Equal(t, "c1", got.Results[0].CandidateID)
	assert.Nil(t, got.Results[0].SubScores.VectorSimilarity)
	assert.NotEmpty(t, got.Results[0].MatchReasons)
}

func TestSearchWithVectorsRanksBySimilarity(t *testing.T) {
	queryVec := []float64{1, 0, 0}
	near := activeCandidate("near", "Marketing", "social media")
	far := activeCandidate("far", "Marketing", "social media")

	svc := newTestService(
		fakeEmbedder{vector: queryVec},
		fakeVectors{vectors: []models.CandidateVector{
			{CandidateID: "near", ProfileVector: []float64{0.9, 0.1, 0}, SkillsVector: []float64{1, 0, 0}, AcademicVector: []float64{1, 0, 0}},
			{CandidateID: "far", ProfileVector: []float64{0, 1, 0}, SkillsVector: []float64{0, 1, 0}, AcademicVector: []float64{0, 1, 0}},
		}},
		fakeBuilder{result: &pool.Result{Stage: "vector", Candidates: []models.Candidate{far, near}}},
	)

	got, err := svc.Search(context.Background(), Request{Query: "marketing students", CompanyID: "co1"})

	require.NoError(t, err)
	assert.True(t, got.Metadata.VectorsUsed)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "near", got.Results[0].CandidateID)
	require.NotNil(t, got.Results[0].SubScores.VectorSimilarity)
	assert.Greater(t, *got.Results[0].SubScores.VectorSimilarity, 0.9)
	assert.Equal(t, 100.0, got.Results[0].MatchScore)
}

func TestSearchCandidateWithoutVectorScoredRuleBased(t *testing.T) {
	queryVec := []float64{1, 0, 0}
	withVec := activeCandidate("v", "Marketing", "social media")
	withoutVec := activeCandidate("nv", "Marketing", "social media")

	svc := newTestService(
		fakeEmbedder{vector: queryVec},
		fakeVectors{vectors: []models.CandidateVector{
			{CandidateID: "v", ProfileVector: []float64{1, 0, 0}, SkillsVector: []float64{1, 0, 0}, AcademicVector: []float64{1, 0, 0}},
		}},
		fakeBuilder{result: &pool.Result{Stage: "vector", Candidates: []models.Candidate{withVec, withoutVec}}},
	)

	got, err := svc.Search(context.Background(), Request{Query: "marketing students with social media skills", CompanyID: "co1"})

	require.NoError(t, err)
	require.Len(t, got.Results, 2)

	byID := map[string]models.MatchResult{}
	for _, r := range got.Results {
		byID[r.CandidateID] = r
	}
	assert.NotNil(t, byID["v"].SubScores.VectorSimilarity)
	assert.Nil(t, byID["nv"].SubScores.VectorSimilarity)
	assert.Greater(t, byID["nv"].OverallScore, 0.0)
}

func TestSearchPropagatesBuilderError(t *testing.T) {
	svc := newTestService(fakeEmbedder{}, fakeVectors{}, fakeBuilder{err: context.DeadlineExceeded})

	_, err := svc.Search(context.Background(), Request{Query: "marketing", CompanyID: "co1"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type truncatingGate struct{ max int }

func (g truncatingGate) Apply(ctx context.Context, companyID string, results []models.MatchResult) ([]models.MatchResult, error) {
	if len(results) > g.max {
		results = results[:g.max]
	}
	return results, nil
}

func TestSearchAppliesGate(t *testing.T) {
	candidates := []models.Candidate{
		activeCandidate("a", "Marketing", "social media"),
		activeCandidate("b", "Marketing", "social media"),
		activeCandidate("c", "Marketing", "social media"),
	}

	cfg := testMatchingConfig()
	svc := NewService(
		fakeEmbedder{err: errors.New("down")},
		fakeVectors{},
		fakeBuilder{result: &pool.Result{Stage: "strict", Candidates: candidates}},
		ranking.NewEngine(cfg),
		truncatingGate{max: 2},
		nil,
		cfg,
		logger.NewNoOpLogger(),
	)

	got, err := svc.Search(context.Background(), Request{
		Query:     "marketing students with social media skills",
		CompanyID: "co1",
	})

	require.NoError(t, err)
	assert.Len(t, got.Results, 2)
}
