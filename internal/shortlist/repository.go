// internal/shortlist/repository.go
package shortlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/models"

	"github.com/lib/pq"
)

// Repository is the SQL layer of the shortlisting flow: projects,
// applications and shortlist mutations.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Project loads one opportunity.
func (r *Repository) Project(ctx context.Context, projectID string) (*models.Opportunity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, title, description, skills_required, category,
		       experience_level, location, created_at
		FROM projects WHERE id = $1`, projectID)

	var p models.Opportunity
	var skills pq.StringArray
	var experienceLevel, location sql.NullString

	err := row.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &skills,
		&p.Category, &experienceLevel, &location, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewProjectNotFoundError(projectID)
		}
		return nil, fmt.Errorf("load project %s: %w", projectID, err)
	}

	p.SkillsRequired = skills
	p.ExperienceLevel = experienceLevel.String
	p.Location = location.String
	return &p, nil
}

// Applications loads every application for a project, oldest first.
func (r *Repository) Applications(ctx context.Context, projectID string) ([]models.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, project_id, status, cover_letter, why_interested,
		       proposed_approach, relevant_experience, compatibility_score,
		       shortlist_rank, shortlisted_at, created_at
		FROM applications
		WHERE project_id = $1
		ORDER BY created_at ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load applications for %s: %w", projectID, err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		var coverLetter, whyInterested, approach, experience sql.NullString
		var rank sql.NullInt64

		err := rows.Scan(&a.ID, &a.UserID, &a.ProjectID, &a.Status,
			&coverLetter, &whyInterested, &approach, &experience,
			&a.CompatibilityScore, &rank, &a.ShortlistedAt, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan application row: %w", err)
		}

		a.CoverLetter = coverLetter.String
		a.WhyInterested = whyInterested.String
		a.ProposedApproach = approach.String
		a.RelevantExperience = experience.String
		a.ShortlistRank = int(rank.Int64)
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application rows: %w", err)
	}
	return apps, nil
}

// MarkShortlisted promotes one application with its rank and score.
func (r *Repository) MarkShortlisted(ctx context.Context, applicationID string, rank int, score float64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $2, shortlist_rank = $3, compatibility_score = $4, shortlisted_at = $5
		WHERE id = $1`,
		applicationID, models.ApplicationShortlisted, rank, score, at)
	if err != nil {
		return fmt.Errorf("mark application %s shortlisted: %w", applicationID, err)
	}
	return nil
}

// ResetShortlist clears auto-shortlist state for a project so a manual
// review can start over. Interviewed and rejected applications keep their
// status.
func (r *Repository) ResetShortlist(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $2, shortlist_rank = NULL, shortlisted_at = NULL
		WHERE project_id = $1 AND status = $3`,
		projectID, models.ApplicationPending, models.ApplicationShortlisted)
	if err != nil {
		return fmt.Errorf("reset shortlist for %s: %w", projectID, err)
	}
	return nil
}
