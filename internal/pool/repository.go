// internal/pool/repository.go
package pool

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"talent-match/internal/models"

	"github.com/lib/pq"
)

// candidateColumns is the shared projection for every retrieval query.
const candidateColumns = `
	id, name, email, linkedin_url, bio, university, major, subjects,
	high_school, education_level, graduation_year, location,
	skills, interests, goals,
	last_active_at, applications_this_month, total_applications,
	profile_completed, profile_completed_at, prior_application_summary,
	created_at, updated_at`

// CandidateRepository runs retrieval SQL against the candidates table.
type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// ByIDs loads candidates for an explicit ID set, preserving no particular
// order. Missing IDs are silently skipped.
func (r *CandidateRepository) ByIDs(ctx context.Context, ids []string) ([]models.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = ANY($1)`, candidateColumns)
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query candidates by ids: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// Query runs an arbitrary WHERE clause built by a cascade stage. The clause
// must reference placeholders starting at $1 matching args.
func (r *CandidateRepository) Query(ctx context.Context, where, orderBy string, limit int, args ...interface{}) ([]models.Candidate, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM candidates", candidateColumns)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	if orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}
	if limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows *sql.Rows) ([]models.Candidate, error) {
	var out []models.Candidate
	for rows.Next() {
		var c models.Candidate
		var email, linkedin, bio, university, major, subjects sql.NullString
		var highSchool, educationLevel, location, priorApps sql.NullString
		var graduationYear sql.NullInt64
		var skills, interests, goals pq.StringArray

		err := rows.Scan(
			&c.ID, &c.Name, &email, &linkedin, &bio, &university, &major,
			&subjects, &highSchool, &educationLevel, &graduationYear,
			&location, &skills, &interests, &goals,
			&c.LastActiveAt, &c.ApplicationsThisMonth, &c.TotalApplications,
			&c.ProfileCompleted, &c.ProfileCompletedAt, &priorApps,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}

		c.Email = email.String
		c.LinkedIn = linkedin.String
		c.Bio = bio.String
		c.University = university.String
		c.Major = major.String
		c.Subjects = subjects.String
		c.HighSchool = highSchool.String
		c.EducationLevel = educationLevel.String
		c.GraduationYear = int(graduationYear.Int64)
		c.Location = location.String
		c.PriorApplicationSummary = priorApps.String
		c.Skills = skills
		c.Interests = interests
		c.Goals = goals

		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate rows: %w", err)
	}
	return out, nil
}

// likePatterns turns filter terms into ILIKE patterns.
func likePatterns(terms []string) []string {
	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		patterns = append(patterns, "%"+t+"%")
	}
	return patterns
}
