// internal/gating/cache.go
package gating

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-match/internal/common/logger"
	"talent-match/internal/models"

	"github.com/redis/go-redis/v9"
)

const subscriptionCacheTTL = 5 * time.Minute

// CachedSubscriptionReader fronts another reader with a Redis cache.
// Cache failures fall through to the inner reader; the gate already
// degrades to the free tier when that fails too.
type CachedSubscriptionReader struct {
	inner  SubscriptionReader
	client *redis.Client
	logger logger.Logger
}

func NewCachedSubscriptionReader(inner SubscriptionReader, client *redis.Client, log logger.Logger) *CachedSubscriptionReader {
	return &CachedSubscriptionReader{inner: inner, client: client, logger: log}
}

func (r *CachedSubscriptionReader) ActiveSubscription(ctx context.Context, companyID string) (*models.Subscription, error) {
	key := subscriptionCacheKey(companyID)

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var sub models.Subscription
		if err := json.Unmarshal([]byte(cached), &sub); err == nil {
			return &sub, nil
		}
		// Corrupt entry: drop it and re-read.
		r.client.Del(ctx, key)
	} else if err != redis.Nil {
		r.logger.WithError(err).Debug("subscription cache read failed", nil)
	}

	sub, err := r.inner.ActiveSubscription(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	if payload, err := json.Marshal(sub); err == nil {
		if err := r.client.Set(ctx, key, payload, subscriptionCacheTTL).Err(); err != nil {
			r.logger.WithError(err).Debug("subscription cache write failed", nil)
		}
	}
	return sub, nil
}

func subscriptionCacheKey(companyID string) string {
	return fmt.Sprintf("subscription:%s", companyID)
}
