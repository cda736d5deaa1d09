package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "alpr_gateway/docs"
	"alpr_gateway/internal/config"
	"alpr_gateway/internal/handlers"
	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/repository"
	"alpr_gateway/internal/repository/db"
	"alpr_gateway/internal/server"
	"alpr_gateway/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        ALPR gateway API
// @version      1.0
// @description  Recognition history, people and access point registry, settings and upstream status for the ALPR gateway.
// @BasePath     /
func main() {
	// load configs/config.yml
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.Options{Level: logger.InfoLevel}).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(logger.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		BufferLines: cfg.Log.BufferLines,
	})
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// runtime settings; the stored debug flag wins over log.level
	store := config.NewSettingsStore(cfg.SettingsPath)
	settings, err := store.Load()
	if err != nil {
		log.Fatalw("failed to load settings", "path", cfg.SettingsPath, "err", err)
	}
	if settings.Debug {
		log.SetDebug(true)
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services, err := service.NewService(repos, store, log, cfg)
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log).WithSnapshots(cfg.SnapshotsDir)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// upstream probes and history maintenance
	go services.Monitor.Run(ctx, cfg.Status.Interval)
	services.Maintenance.Start()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("gateway started", "port", cfg.Port, "db", cfg.DBPath, "maintenance_jobs", services.Maintenance.Jobs())

	// graceful shutdown
	waitForShutdown(cancel, srv, services.Maintenance, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "base.db")
		dbPath = "base.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8081"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, maintenance *service.Maintenance, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests and running jobs to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	maintenance.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
