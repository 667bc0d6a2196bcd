// cmd/worker-manager/main.go
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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"compliance-workers/internal/common/config"
	"compliance-workers/internal/common/database"
	"compliance-workers/internal/common/logger"
	"compliance-workers/internal/common/observability"
	"compliance-workers/internal/scope"
	"compliance-workers/internal/scoring"
	"compliance-workers/internal/storage"

	cs "compliance-workers/internal/workers/assessment/calculate-score"
	fq "compliance-workers/internal/workers/assessment/filter-questions"
	rs "compliance-workers/internal/workers/assessment/resolve-scope"
	ir "compliance-workers/internal/workers/reporting/index-result"
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
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

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

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Shared engine wiring ---
	store := storage.NewPostgresStore(pg.DB)
	scopeCache := storage.NewRedisScopeCache(
		rdb.Client,
		time.Duration(cfg.Scoring.ScopeCacheTTLMinutes)*time.Minute,
	)
	resultIndex := storage.NewESResultIndex(esClient.Client, cfg.Scoring.ResultIndex)
	resolver := scope.NewResolver(scope.DefaultRules())
	engine := scoring.NewEngine(
		store, store, store, scopeCache,
		resolver, scoring.DefaultWeightTable(), log,
	)

	// --- Register Workers ---

	if cfg.Workers[rs.TaskType].Enabled {
		handler := rs.NewHandler(
			&rs.Config{
				Timeout: time.Duration(cfg.Workers[rs.TaskType].Timeout) * time.Millisecond,
			},
			store, scopeCache, resolver, log,
		)
		startWorker(zeebeClient, rs.TaskType, cfg.Workers[rs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[fq.TaskType].Enabled {
		handler := fq.NewHandler(
			&fq.Config{
				Timeout: time.Duration(cfg.Workers[fq.TaskType].Timeout) * time.Millisecond,
			},
			store, scopeCache, log,
		)
		startWorker(zeebeClient, fq.TaskType, cfg.Workers[fq.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cs.TaskType].Enabled {
		handler := cs.NewHandler(
			&cs.Config{
				Timeout: time.Duration(cfg.Workers[cs.TaskType].Timeout) * time.Millisecond,
			},
			engine, obs, log,
		)
		startWorker(zeebeClient, cs.TaskType, cfg.Workers[cs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ir.TaskType].Enabled {
		handler := ir.NewHandler(
			&ir.Config{
				Timeout: time.Duration(cfg.Workers[ir.TaskType].Timeout) * time.Millisecond,
			},
			resultIndex, log,
		)
		startWorker(zeebeClient, ir.TaskType, cfg.Workers[ir.TaskType], handler.Handle, zapLog)
	}

	// --- Health/Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started", zap.String("taskType", taskType))
}
