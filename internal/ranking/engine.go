// internal/ranking/engine.go
package ranking

import (
	"sort"

	"talent-match/internal/common/config"
	"talent-match/internal/models"
	"talent-match/internal/scoring"
)

// Engine blends per-dimension scores into overall scores and orders the
// result set. Weight tables are injected, never hardcoded here.
type Engine struct {
	cfg config.MatchingConfig
}

func NewEngine(cfg config.MatchingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Weights selects the blend table for a mode and vector availability.
func (e *Engine) Weights(mode models.SearchMode, vectorsUsed bool) config.BlendWeights {
	switch {
	case mode == models.ModeShortlist && vectorsUsed:
		return e.cfg.ShortlistWithVectors
	case mode == models.ModeShortlist:
		return e.cfg.ShortlistNoVectors
	case vectorsUsed:
		return e.cfg.SearchWithVectors
	default:
		return e.cfg.SearchNoVectors
	}
}

// Blend computes the weighted overall score for one candidate. The vector
// term contributes only when similarity was actually computed; the
// vectorless weight tables carry a zero vector weight so the two stay
// consistent.
func (e *Engine) Blend(sub *models.SubScores, w config.BlendWeights) float64 {
	score := 0.0
	if sub.VectorSimilarity != nil {
		// Cosine similarity in [-1,1] mapped onto the 0-100 scale.
		score += w.Vector * (*sub.VectorSimilarity + 1) / 2 * 100
	}
	score += w.Profile * sub.Profile
	score += w.Skills * sub.Skills
	score += w.Project * sub.Project
	score += w.Application * sub.Application

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// RelevanceFirstOverall is the rule-based blend used when matching runs
// without embeddings at all: query relevance dominates, profile quality and
// activity are secondary.
func (e *Engine) RelevanceFirstOverall(relevance, proxy, activity float64) float64 {
	rf := e.cfg.RelevanceFirst
	score := rf.RelevanceWeight*relevance + rf.ProxyWeight*proxy + rf.ActivityWeight*activity
	if score > 100 {
		score = 100
	}
	return score
}

// MeetsRelevanceFloor applies the minimum admission score of the
// relevance-first path.
func (e *Engine) MeetsRelevanceFloor(overall float64) bool {
	return overall >= e.cfg.RelevanceFirst.MinOverallScore
}

// Rank orders results best-first. With vectors the overall blended score
// alone decides. On the relevance-first path, when two candidates'
// relevance scores differ by more than the dominance margin, relevance
// decides regardless of the overall score; inside the margin the overall
// score decides.
func (e *Engine) Rank(results []models.MatchResult, vectorsUsed bool) {
	if vectorsUsed {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].OverallScore > results[j].OverallScore
		})
		return
	}

	margin := e.cfg.RelevanceFirst.DominanceMargin
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i].SubScores.Relevance, results[j].SubScores.Relevance
		diff := ri - rj
		if diff > margin {
			return true
		}
		if diff < -margin {
			return false
		}
		return results[i].OverallScore > results[j].OverallScore
	})
}

// Finalize normalizes raw overall scores into display scores and attaches
// confidence labels, recommended actions, engagement and reasons.
func (e *Engine) Finalize(results []models.MatchResult, q *models.SearchQuery, vectorsUsed bool) {
	raw := make([]float64, len(results))
	for i := range results {
		raw[i] = results[i].OverallScore
	}
	normalized := scoring.Normalize(raw)

	for i := range results {
		results[i].MatchScore = normalized[i]
		results[i].Confidence = confidenceFor(results[i].OverallScore, vectorsUsed)
		results[i].Action = actionFor(results[i].OverallScore, results[i].Confidence)
		results[i].Engagement = scoring.EngagementLevel(results[i].SubScores.Activity)
		if results[i].Candidate != nil {
			results[i].MatchReasons = Reasons(results[i].Candidate, &results[i].SubScores, q)
		}
	}
}

// confidenceFor labels score trustworthiness. Without vectors the
// thresholds shift up 10 points: rule-based scores need a bigger cushion
// before the same label applies.
func confidenceFor(overall float64, vectorsUsed bool) models.Confidence {
	high, medium := 85.0, 70.0
	if !vectorsUsed {
		high += 10
		medium += 10
	}

	switch {
	case overall >= high:
		return models.ConfidenceHigh
	case overall >= medium:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func actionFor(overall float64, confidence models.Confidence) models.RecommendedAction {
	switch {
	case overall >= 85 && confidence == models.ConfidenceHigh:
		return models.ActionShortlist
	case overall >= 75:
		return models.ActionConsider
	case overall >= 60:
		return models.ActionReview
	default:
		return models.ActionPass
	}
}
