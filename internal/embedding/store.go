// internal/embedding/store.go
package embedding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"talent-match/internal/common/config"
	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/models"
)

// Store persists candidate vectors in Postgres. Upsert is idempotent on
// candidate id (replace-on-conflict); last writer wins.
type Store struct {
	db            *sql.DB
	stalenessDays int
}

func NewStore(db *sql.DB, cfg config.EmbeddingConfig) *Store {
	return &Store{
		db:            db,
		stalenessDays: cfg.StalenessDays,
	}
}

// Get returns the stored vector for a candidate, or nil when absent.
func (s *Store) Get(ctx context.Context, candidateID string) (*models.CandidateVector, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT candidate_id, profile_vector, skills_vector, academic_vector, version, updated_at
		FROM candidate_vectors WHERE candidate_id = $1`, candidateID)

	vec, err := scanVector(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewVectorStoreError("get", err)
	}
	return vec, nil
}

// Upsert stores a vector, replacing any previous row for the candidate.
func (s *Store) Upsert(ctx context.Context, vec *models.CandidateVector) error {
	profile, _ := json.Marshal(vec.ProfileVector)
	skills, _ := json.Marshal(vec.SkillsVector)
	academic, _ := json.Marshal(vec.AcademicVector)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate_vectors (candidate_id, profile_vector, skills_vector, academic_vector, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (candidate_id) DO UPDATE SET
			profile_vector = EXCLUDED.profile_vector,
			skills_vector = EXCLUDED.skills_vector,
			academic_vector = EXCLUDED.academic_vector,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at`,
		vec.CandidateID, profile, skills, academic, vec.Version, vec.UpdatedAt)
	if err != nil {
		return apperrors.NewVectorStoreError("upsert", err)
	}
	return nil
}

// GetAll returns every stored candidate vector.
func (s *Store) GetAll(ctx context.Context) ([]models.CandidateVector, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id, profile_vector, skills_vector, academic_vector, version, updated_at
		FROM candidate_vectors`)
	if err != nil {
		return nil, apperrors.NewVectorStoreError("getAll", err)
	}
	defer rows.Close()

	var vectors []models.CandidateVector
	for rows.Next() {
		vec, err := scanVector(rows)
		if err != nil {
			return nil, apperrors.NewVectorStoreError("getAll", err)
		}
		vectors = append(vectors, *vec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewVectorStoreError("getAll", err)
	}
	return vectors, nil
}

// NeedsRefresh reports whether a candidate's vector must be regenerated:
// missing, profile modified after the vector, generator version changed,
// or older than the staleness window.
func (s *Store) NeedsRefresh(vec *models.CandidateVector, c *models.Candidate, currentVersion string) bool {
	if vec == nil {
		return true
	}
	if c.UpdatedAt.After(vec.UpdatedAt) {
		return true
	}
	if vec.Version != currentVersion {
		return true
	}
	staleCutoff := time.Now().UTC().AddDate(0, 0, -s.stalenessDays)
	return vec.UpdatedAt.Before(staleCutoff)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVector(row rowScanner) (*models.CandidateVector, error) {
	var vec models.CandidateVector
	var profile, skills, academic []byte

	if err := row.Scan(&vec.CandidateID, &profile, &skills, &academic, &vec.Version, &vec.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(profile, &vec.ProfileVector); err != nil {
		vec.ProfileVector = nil
	}
	if err := json.Unmarshal(skills, &vec.SkillsVector); err != nil {
		vec.SkillsVector = nil
	}
	if err := json.Unmarshal(academic, &vec.AcademicVector); err != nil {
		vec.AcademicVector = nil
	}

	return &vec, nil
}
