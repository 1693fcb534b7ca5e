// internal/pool/vector.go
package pool

import (
	"context"

	"talent-match/internal/models"
)

// VectorLister is the slice of the vector store the vector stage needs.
type VectorLister interface {
	GetAll(ctx context.Context) ([]models.CandidateVector, error)
}

// VectorStage pools every candidate with stored embeddings. It only applies
// when the query itself was embedded; similarity is computed downstream by
// the scorer, not here.
type VectorStage struct {
	vectors VectorLister
	repo    *CandidateRepository
}

func NewVectorStage(vectors VectorLister, repo *CandidateRepository) *VectorStage {
	return &VectorStage{vectors: vectors, repo: repo}
}

func (s *VectorStage) Name() string { return "vector" }

func (s *VectorStage) Fetch(ctx context.Context, q *models.SearchQuery) ([]models.Candidate, error) {
	if len(q.QueryVector) == 0 {
		return nil, nil
	}

	vectors, err := s.vectors.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(vectors))
	for _, v := range vectors {
		if len(v.ProfileVector) > 0 {
			ids = append(ids, v.CandidateID)
		}
	}
	return s.repo.ByIDs(ctx, ids)
}
