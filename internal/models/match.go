// internal/models/match.go
package models

// SearchMode selects the blending weight table.
type SearchMode string

const (
	ModeSearch    SearchMode = "search"    // company free-text search
	ModeShortlist SearchMode = "shortlist" // project applicant shortlisting
)

// Confidence summarizes how trustworthy a match score is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RecommendedAction is the coarse shortlisting recommendation.
type RecommendedAction string

const (
	ActionShortlist RecommendedAction = "shortlist"
	ActionConsider  RecommendedAction = "consider"
	ActionReview    RecommendedAction = "review"
	ActionPass      RecommendedAction = "pass"
)

// SubScores carries the named per-dimension scores feeding the blend.
// Vector similarity is nil when no usable embeddings were available.
type SubScores struct {
	VectorSimilarity *float64 `json:"vectorSimilarity,omitempty"`
	Profile          float64  `json:"profile"`
	Skills           float64  `json:"skills"`
	Academic         float64  `json:"academic"`
	Project          float64  `json:"project"`
	Application      float64  `json:"application"`
	Relevance        float64  `json:"relevance"`
	Activity         float64  `json:"activity"`
}

// MatchResult is the per-candidate output of the ranking engine.
type MatchResult struct {
	CandidateID  string            `json:"candidateId"`
	Candidate    *Candidate        `json:"candidate,omitempty"`
	SubScores    SubScores         `json:"subScores"`
	OverallScore float64           `json:"overallScore"`
	MatchScore   float64           `json:"matchScore"` // normalized to [15,100]
	Confidence   Confidence        `json:"confidence"`
	Action       RecommendedAction `json:"recommendedAction"`
	MatchReasons []string          `json:"matchReasons"`
	Engagement   EngagementLevel   `json:"engagement,omitempty"`

	// Tier gate outputs.
	ContactRevealed bool   `json:"contactRevealed"`
	CreditCost      int    `json:"creditCost,omitempty"`
	AIInsight       string `json:"aiInsight,omitempty"`
}

// SearchQuery is the ephemeral parsed form of one search call.
// Never persisted.
type SearchQuery struct {
	Raw          string
	CompanyID    string
	Project      *Opportunity
	QueryVector  []float64
	Universities []string
	Majors       []string
	Skills       []string
}

// HasFilters reports whether any structured filter was extracted.
func (q *SearchQuery) HasFilters() bool {
	return len(q.Universities) > 0 || len(q.Majors) > 0 || len(q.Skills) > 0
}

// SearchMetadata is observability output, not a stable public contract.
type SearchMetadata struct {
	RequestID      string  `json:"requestId"`
	Mode           string  `json:"mode"`
	PoolSize       int     `json:"poolSize"`
	RetrievalStage string  `json:"retrievalStage"`
	Threshold      float64 `json:"threshold"`
	ProcessingMs   int64   `json:"processingMs"`
	VectorsUsed    bool    `json:"vectorsUsed"`
}

// RankedResults is the outbound payload of one search.
type RankedResults struct {
	Results     []MatchResult  `json:"results"`
	Metadata    SearchMetadata `json:"metadata"`
	Suggestions []string       `json:"suggestions,omitempty"` // populated when results are empty
}
