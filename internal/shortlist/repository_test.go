// internal/shortlist/repository_test.go
package shortlist

import (
	"context"
	"testing"
	"time"

	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepositoryProject(t *testing.T) {
	repo, mock := newTestRepository(t)
	created := time.Now()

	mock.ExpectQuery(`SELECT id, company_id, .+ FROM projects WHERE id = \$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "title", "description", "skills_required",
			"category", "experience_level", "location", "created_at",
		}).AddRow("p1", "co1", "Campaign", "Grow the brand",
			pq.StringArray{"social media"}, "marketing", nil, "Dubai", created))

	p, err := repo.Project(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Campaign", p.Title)
	assert.Equal(t, []string{"social media"}, p.SkillsRequired)
	assert.Equal(t, "Dubai", p.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryProjectNotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT id, company_id, .+ FROM projects`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "title", "description", "skills_required",
			"category", "experience_level", "location", "created_at",
		}))

	_, err := repo.Project(context.Background(), "ghost")

	assert.Equal(t, apperrors.ErrCodeProjectNotFound, apperrors.CodeOf(err))
}

func TestRepositoryApplications(t *testing.T) {
	repo, mock := newTestRepository(t)
	created := time.Now()

	mock.ExpectQuery(`SELECT id, user_id, .+ FROM applications WHERE project_id = \$1 ORDER BY created_at ASC`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "project_id", "status", "cover_letter", "why_interested",
			"proposed_approach", "relevant_experience", "compatibility_score",
			"shortlist_rank", "shortlisted_at", "created_at",
		}).
			AddRow("a1", "u1", "p1", "pending", "letter", nil, nil, nil, nil, nil, nil, created).
			AddRow("a2", "u2", "p1", "shortlisted", nil, nil, nil, nil, 72.5, 1, created, created))

	apps, err := repo.Applications(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, models.ApplicationPending, apps[0].Status)
	assert.Equal(t, "letter", apps[0].CoverLetter)
	assert.Equal(t, 1, apps[1].ShortlistRank)
	require.NotNil(t, apps[1].CompatibilityScore)
	assert.Equal(t, 72.5, *apps[1].CompatibilityScore)
}

func TestRepositoryMarkShortlisted(t *testing.T) {
	repo, mock := newTestRepository(t)
	at := time.Now()

	mock.ExpectExec(`UPDATE applications\s+SET status = \$2, shortlist_rank = \$3`).
		WithArgs("a1", string(models.ApplicationShortlisted), 3, 81.0, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkShortlisted(context.Background(), "a1", 3, 81.0, at)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryResetShortlist(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`UPDATE applications\s+SET status = \$2, shortlist_rank = NULL`).
		WithArgs("p1", string(models.ApplicationPending), string(models.ApplicationShortlisted)).
		WillReturnResult(sqlmock.NewResult(0, 10))

	err := repo.ResetShortlist(context.Background(), "p1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
