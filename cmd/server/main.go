package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skylane/concourse/internal/api"
	"skylane/concourse/internal/common"
	"skylane/concourse/internal/config"
	"skylane/concourse/internal/db"
	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/routes"
	"skylane/concourse/internal/store/pgstore"
	"skylane/concourse/internal/workers"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Configuration error", "error", err.Error())
	}

	logging.Info("Concourse starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	metricsReg := metrics.NewMetricsRegistry()

	// Connect to DB with sqlx (transactional store)
	if err := db.InitPostgres(cfg.DatabaseURL); err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM (catalog + migrations)
	gormDB, err := db.InitPostgresORM(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (GORM)")

	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Schema migration failed", "error", err.Error())
	}

	redisClient := common.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)

	st := pgstore.New(db.DB)
	deps := api.InitDependencies(cfg, st, gormDB, redisClient, metricsReg)

	// Background actors share one cancellation context; on shutdown each
	// finishes its in-flight unit of work and exits.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	workers.InitWorkers(
		workerCtx,
		st,
		deps.Svc.Bookings,
		deps.Svc.Receipts,
		deps.Repo.Users,
		deps.Queue,
		metricsReg,
		cfg.SimulatorPeriod,
		cfg.ReaperPeriod,
		workers.MailerConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.MailFrom,
		},
	)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Metrics endpoint lives outside the chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutdown signal received")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
	logging.Info("Server stopped")
}
