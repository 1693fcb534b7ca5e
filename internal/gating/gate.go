// internal/gating/gate.go
package gating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-match/internal/common/config"
	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/common/logger"
	"talent-match/internal/models"
)

const bioPreviewChars = 150

// Gate applies subscription tier limits to ranked results: result count
// truncation, field visibility, contact reveal pricing. Scoring happens
// before the gate; the gate never re-orders.
type Gate struct {
	cfg    config.TiersConfig
	subs   SubscriptionReader
	logger logger.Logger
}

// SubscriptionReader loads the active plan for a company.
type SubscriptionReader interface {
	ActiveSubscription(ctx context.Context, companyID string) (*models.Subscription, error)
}

func NewGate(cfg config.TiersConfig, subs SubscriptionReader, log logger.Logger) *Gate {
	return &Gate{cfg: cfg, subs: subs, logger: log}
}

// Apply truncates and redacts results in place per the company's tier.
// Unknown or expired subscriptions degrade to the free tier rather than
// failing the search.
func (g *Gate) Apply(ctx context.Context, companyID string, results []models.MatchResult) ([]models.MatchResult, error) {
	tier := models.TierFree

	sub, err := g.subs.ActiveSubscription(ctx, companyID)
	if err != nil {
		g.logger.WithError(err).Warn("subscription lookup failed, defaulting to free tier", map[string]interface{}{
			"companyId": companyID,
		})
	} else if sub != nil && sub.IsValid {
		tier = sub.Plan
	}

	limit, ok := g.cfg.Limits[string(tier)]
	if !ok {
		limit = g.cfg.Limits[string(models.TierFree)]
	}

	if limit.MaxResults > 0 && len(results) > limit.MaxResults {
		results = results[:limit.MaxResults]
	}

	for i := range results {
		g.redact(&results[i], models.Visibility(limit.Visibility), i, len(results))
	}
	return results, nil
}

// redact adjusts one result to the tier's visibility level.
func (g *Gate) redact(r *models.MatchResult, vis models.Visibility, rank, total int) {
	switch vis {
	case models.VisibilityCompleteTransparency:
		r.ContactRevealed = true
		r.AIInsight = insightFor(r)
	case models.VisibilityFullPool:
		r.ContactRevealed = true
	default: // shortlisted_only
		r.ContactRevealed = false
		r.CreditCost = g.creditCost(rank, total)
		if r.Candidate != nil {
			c := *r.Candidate
			c.Email = ""
			c.LinkedIn = ""
			if len(c.Bio) > bioPreviewChars {
				c.Bio = c.Bio[:bioPreviewChars] + "..."
			}
			r.Candidate = &c
		}
	}
}

// creditCost prices a contact reveal by the candidate's quality quintile
// within this result set; better candidates cost more.
func (g *Gate) creditCost(rank, total int) int {
	costs := g.cfg.Credits.QuintileCosts
	if len(costs) == 0 || total == 0 {
		return 0
	}

	quintile := rank * len(costs) / total
	if quintile >= len(costs) {
		quintile = len(costs) - 1
	}
	return costs[quintile]
}

// insightFor builds the templated narrative shown on the transparency
// tier. Assembled from computed scores, no generation call involved.
func insightFor(r *models.MatchResult) string {
	var parts []string

	switch {
	case r.OverallScore >= 85:
		parts = append(parts, "Exceptional match for this search.")
	case r.OverallScore >= 70:
		parts = append(parts, "Strong match for this search.")
	default:
		parts = append(parts, "Moderate match worth reviewing.")
	}

	if r.Candidate != nil && r.Candidate.Major != "" {
		parts = append(parts, fmt.Sprintf("Academic background in %s.", r.Candidate.Major))
	}
	if r.SubScores.Activity >= 70 {
		parts = append(parts, "Very active on the platform, likely to respond quickly.")
	} else if r.SubScores.Activity >= 40 {
		parts = append(parts, "Moderately active on the platform.")
	}
	if r.SubScores.Application >= 75 {
		parts = append(parts, "Their application shows genuine effort and interest.")
	}

	return strings.Join(parts, " ")
}

// SQLSubscriptionReader reads subscriptions from Postgres.
type SQLSubscriptionReader struct {
	db *sql.DB
}

func NewSQLSubscriptionReader(db *sql.DB) *SQLSubscriptionReader {
	return &SQLSubscriptionReader{db: db}
}

func (r *SQLSubscriptionReader) ActiveSubscription(ctx context.Context, companyID string) (*models.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT company_id, plan, expires_at
		FROM subscriptions
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, companyID)

	var sub models.Subscription
	if err := row.Scan(&sub.CompanyID, &sub.Plan, &sub.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewSubscriptionCheckFailedError(err)
	}

	sub.IsValid = sub.ExpiresAt == nil || sub.ExpiresAt.After(time.Now())
	return &sub, nil
}
