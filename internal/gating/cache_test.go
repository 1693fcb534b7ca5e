// internal/gating/cache_test.go
package gating

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talent-match/internal/common/logger"
	"talent-match/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSubs struct {
	sub   *models.Subscription
	calls int
}

func (c *countingSubs) ActiveSubscription(ctx context.Context, companyID string) (*models.Subscription, error) {
	c.calls++
	return c.sub, nil
}

func TestCachedSubscriptionReaderHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	sub := &models.Subscription{CompanyID: "co1", Plan: models.TierProfessional, IsValid: true}
	payload, err := json.Marshal(sub)
	require.NoError(t, err)

	mock.ExpectGet("subscription:co1").SetVal(string(payload))

	inner := &countingSubs{}
	reader := NewCachedSubscriptionReader(inner, client, logger.NewNoOpLogger())

	got, err := reader.ActiveSubscription(context.Background(), "co1")

	require.NoError(t, err)
	assert.Equal(t, models.TierProfessional, got.Plan)
	assert.Equal(t, 0, inner.calls, "a cache hit must not touch the database")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSubscriptionReaderMissThenSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	sub := &models.Subscription{CompanyID: "co1", Plan: models.TierEnterprise, IsValid: true}
	payload, err := json.Marshal(sub)
	require.NoError(t, err)

	mock.ExpectGet("subscription:co1").RedisNil()
	mock.ExpectSet("subscription:co1", payload, 5*time.Minute).SetVal("OK")

	inner := &countingSubs{sub: sub}
	reader := NewCachedSubscriptionReader(inner, client, logger.NewNoOpLogger())

	got, err := reader.ActiveSubscription(context.Background(), "co1")

	require.NoError(t, err)
	assert.Equal(t, models.TierEnterprise, got.Plan)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSubscriptionReaderNoSubscriptionNotCached(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("subscription:ghost").RedisNil()

	inner := &countingSubs{}
	reader := NewCachedSubscriptionReader(inner, client, logger.NewNoOpLogger())

	got, err := reader.ActiveSubscription(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
