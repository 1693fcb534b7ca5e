// cmd/matcher/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"talent-match/internal/common/config"
	"talent-match/internal/common/database"
	"talent-match/internal/common/logger"
	"talent-match/internal/common/observability"
	"talent-match/internal/embedding"
	"talent-match/internal/gating"
	"talent-match/internal/pool"
	"talent-match/internal/ranking"
	"talent-match/internal/search"
	"talent-match/internal/server"
	"talent-match/internal/shortlist"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matcher service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("matcher")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional keyword-search backend) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, keyword fallback will use SQL", zap.Error(err))
			esClient = nil
		} else {
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Embedding pipeline ---
	provider := embedding.NewHTTPProvider(cfg.Embedding)
	if !provider.Configured() {
		zapLog.Warn("embedding provider not configured, all searches will run rule-based")
	}
	generator := embedding.NewGenerator(provider, cfg.Embedding, log)
	vectorStore := embedding.NewStore(pg.DB, cfg.Embedding)

	// --- Retrieval cascade ---
	repo := pool.NewCandidateRepository(pg.DB)
	builder := pool.NewBuilder(log,
		pool.NewVectorStage(vectorStore, repo),
		pool.NewStrictStage(repo, cfg.Matching.Pool),
		pool.NewRelaxedStage(repo, cfg.Matching.Pool),
		pool.NewKeywordStage(repo, esClient, cfg.Matching.Pool, log),
		pool.NewEmergencyStage(repo, cfg.Matching.Pool),
	)

	// --- Scoring, gating, shortlisting ---
	engine := ranking.NewEngine(cfg.Matching)
	subscriptions := gating.NewCachedSubscriptionReader(
		gating.NewSQLSubscriptionReader(pg.DB), rdb.Client, log)
	gate := gating.NewGate(cfg.Tiers, subscriptions, log)

	shortlistRepo := shortlist.NewRepository(pg.DB)
	shortlistSvc := shortlist.NewService(shortlistRepo, repo, rdb, engine, cfg.Shortlist, log)

	searchSvc := search.NewService(generator, vectorStore, builder, engine, gate, obs, cfg.Matching, log)

	// --- Background vector refresh sweep ---
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if provider.Configured() {
		go refreshLoop(sweepCtx, generator, vectorStore, repo, log)
	}

	// --- HTTP server ---
	srv := server.New(searchSvc, shortlistSvc, shortlistRepo, log)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}

// refreshLoop periodically regenerates stale candidate vectors. Started
// only when the provider is configured; each sweep loads the current
// candidate set and lets the generator decide who needs work.
func refreshLoop(ctx context.Context, gen *embedding.Generator, store *embedding.Store, repo *pool.CandidateRepository, log logger.Logger) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		candidates, err := repo.Query(ctx, "profile_completed = true", "updated_at DESC", 0)
		if err != nil {
			log.WithError(err).Warn("vector refresh sweep skipped, candidate load failed", nil)
			continue
		}

		if _, err := gen.RefreshStale(ctx, store, candidates); err != nil {
			log.WithError(err).Warn("vector refresh sweep interrupted", nil)
		}
	}
}
