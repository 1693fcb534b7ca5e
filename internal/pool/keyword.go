// internal/pool/keyword.go
package pool

import (
	"context"
	"strings"

	"talent-match/internal/common/config"
	"talent-match/internal/common/database"
	"talent-match/internal/common/logger"
	"talent-match/internal/models"

	"github.com/lib/pq"
)

// keywordBuckets maps a theme detected in the raw query to the broad terms
// used to pull loosely related candidates when structured filters got us
// nothing.
var keywordBuckets = map[string][]string{
	"marketing": {"marketing", "social media", "content", "brand", "advertising", "media"},
	"tech":      {"software", "developer", "computer", "programming", "data", "engineer", "web"},
	"business":  {"business", "finance", "sales", "management", "consulting", "strategy"},
}

var bucketTriggers = map[string][]string{
	"marketing": {"marketing", "social media", "content", "brand", "instagram", "tiktok"},
	"tech":      {"software", "developer", "engineer", "coding", "programmer", "technical", "app", "website"},
	"business":  {"business", "finance", "sales", "accounting", "strategy", "operations"},
}

// KeywordStage is the thematic fallback. When an Elasticsearch index is
// configured it runs a full-text multi_match there; otherwise it ORs broad
// ILIKE terms from the detected theme bucket over the profile text columns.
// A query that hits no bucket widens to any candidate with a bio, a major
// or declared interests, so the emergency stage stays the last resort.
type KeywordStage struct {
	repo   *CandidateRepository
	es     *database.ElasticsearchClient
	cfg    config.PoolConfig
	logger logger.Logger
}

// NewKeywordStage accepts a nil es client; the stage then uses SQL only.
func NewKeywordStage(repo *CandidateRepository, es *database.ElasticsearchClient, cfg config.PoolConfig, log logger.Logger) *KeywordStage {
	return &KeywordStage{repo: repo, es: es, cfg: cfg, logger: log}
}

func (s *KeywordStage) Name() string { return "keyword" }

func (s *KeywordStage) Fetch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	if s.es != nil {
		candidates, err := s.fetchElasticsearch(ctx, q)
		if err == nil {
			return candidates, nil
		}
		s.logger.WithError(err).Warn("elasticsearch keyword fallback failed, using SQL", nil)
	}
	return s.fetchSQL(ctx, q)
}

func (s *KeywordStage) fetchElasticsearch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Raw,
				"fields": []string{"bio", "major^2", "subjects", "skills^2", "interests", "goals"},
			},
		},
	}

	ids, err := s.es.SearchIDs(ctx, query, s.cfg.KeywordLimit)
	if err != nil {
		return nil, err
	}
	return s.repo.ByIDs(ctx, ids)
}

func (s *KeywordStage) fetchSQL(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	terms := bucketTerms(q.Raw)
	if len(terms) == 0 {
		return s.repo.Query(ctx,
			"(bio IS NOT NULL OR major IS NOT NULL OR COALESCE(array_length(interests, 1), 0) > 0)",
			"last_active_at DESC NULLS LAST",
			s.cfg.KeywordLimit,
		)
	}

	args := []interface{}{pq.Array(likePatterns(terms))}

	return s.repo.Query(ctx,
		"(major ILIKE ANY($1) OR bio ILIKE ANY($1) OR array_to_string(skills || interests, ' ') ILIKE ANY($1))",
		"last_active_at DESC NULLS LAST",
		s.cfg.KeywordLimit,
		args...,
	)
}

// bucketTerms detects which theme buckets the query touches and merges
// their broad terms.
func bucketTerms(raw string) []string {
	lower := strings.ToLower(raw)

	var terms []string
	seen := map[string]bool{}
	for bucket, triggers := range bucketTriggers {
		for _, t := range triggers {
			if strings.Contains(lower, t) {
				for _, term := range keywordBuckets[bucket] {
					if !seen[term] {
						seen[term] = true
						terms = append(terms, term)
					}
				}
				break
			}
		}
	}
	return terms
}
