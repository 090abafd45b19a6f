package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"carelink/internal/audit"
	"carelink/internal/benchmark"
	benchmarkhandler "carelink/internal/benchmark/handler"
	"carelink/internal/clinic"
	clinichandler "carelink/internal/clinic/handler"
	"carelink/internal/credits"
	creditshandler "carelink/internal/credits/handler"
	creditmetrics "carelink/internal/credits/metrics"
	httpapi "carelink/internal/http"
	"carelink/internal/platform/config"
	"carelink/internal/platform/httpserver"
	"carelink/internal/platform/logger"
	platformmetrics "carelink/internal/platform/metrics"
	platformredis "carelink/internal/platform/redis"
	"carelink/internal/record"
	"carelink/internal/seed"
	"carelink/internal/sharing"
	sharinghandler "carelink/internal/sharing/handler"
	sharingmetrics "carelink/internal/sharing/metrics"
)

const shutdownTimeout = 10 * time.Second

// main wires stores, services and the HTTP surface, then runs the server and
// the audit worker until a shutdown signal arrives. Business logic lives in
// the internal domain packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores. Memory by default; clinics switch to PostgreSQL when a DSN is
	// configured, and the credit ledger to Redis when a URL is configured.
	// Patient records are demo data and stay in memory.
	clinicMemory := clinic.NewInMemoryStore()
	recordStore := record.NewInMemoryStore()

	var clinicStore clinic.Store = clinicMemory
	var clinicWriter seed.ClinicWriter = clinicMemory
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
		pg := clinic.NewPostgresStore(db)
		clinicStore = pg
		clinicWriter = pg
		log.Info("clinic store: postgres")
	}

	var creditStore credits.Store = credits.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		creditStore = credits.NewRedisStore(redisClient.Client)
		log.Info("credit store: redis")
	}

	// Audit trail: non-blocking publisher drained by a background worker.
	auditStore := audit.NewInMemoryStore()
	auditPub := audit.NewPublisher(log, 64)
	auditWorker := audit.NewWorker(auditStore, auditPub.Inbox(), log)

	// Metrics.
	httpMetrics := platformmetrics.New()
	intakeMetrics := sharingmetrics.New()
	ledgerMetrics := creditmetrics.New()

	// Services.
	clinicSvc := clinic.NewService(clinicStore, auditPub)
	sharingSvc := sharing.NewService(clinicSvc, recordStore, intakeMetrics)
	creditSvc := credits.NewService(creditStore, ledgerMetrics, auditPub, cfg.RecentEventsLimit)
	benchmarkSvc := benchmark.NewService(clinicSvc, recordStore)

	if cfg.SeedDemoData {
		if err := seed.Demo(ctx, clinicWriter, recordStore); err != nil {
			log.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		log.Info("demo data seeded")
	}

	router := httpapi.NewRouter(httpapi.Handlers{
		Clinics:   clinichandler.New(clinicSvc, log),
		Intake:    sharinghandler.New(sharingSvc, creditSvc, log),
		Credits:   creditshandler.New(creditSvc, log),
		Benchmark: benchmarkhandler.New(benchmarkSvc, log),
	}, log, httpMetrics)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting carelink", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := auditWorker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
