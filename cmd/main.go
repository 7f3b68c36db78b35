package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryosure/internal/client"
	"cryosure/internal/config"
	"cryosure/internal/dashboard"
	"cryosure/internal/handlers"
	"cryosure/internal/logger"
	"cryosure/internal/repository"
	"cryosure/internal/repository/db"
	"cryosure/internal/server"
	"cryosure/internal/service"

	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// @title        CryoSure dashboard API
// @version      1.0
// @description  Cold-storage threshold wizard and live sensor monitoring.
// @BasePath     /
func main() {
	// load configs/config.yml + CRYOSURE_* env
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel, cfg.LogFormat)
	if cfg.ReadURL == "" {
		log.Warnw("endpoints.read_url not set; monitoring will report a configuration error")
	}
	if cfg.WriteURL == "" {
		log.Warnw("endpoints.write_url not set; submissions will report a configuration error")
	}

	// open DB
	sqlDB, err := openDB(cfg.DBPath, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	services := service.NewService(service.Deps{
		Repos:        repository.NewRepository(sqlDB),
		Store:        dashboard.NewStore(),
		Submitter:    client.NewSubmissionClient(cfg.WriteURL, cfg.HTTPTimeout),
		Fetcher:      client.NewSensorClient(cfg.ReadURL, cfg.HTTPTimeout, cfg.Location),
		PollInterval: cfg.PollInterval,
		Log:          log,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		SubmitRate:  rate.Limit(cfg.SubmitPerSec),
		SubmitBurst: cfg.SubmitBurst,
		CacheTTL:    cfg.CacheTTL,
	})

	// start HTTP server
	srv := &server.Server{WriteTimeout: cfg.HTTPTimeout + 15*time.Second}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(services, srv, log)
}

func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", path)
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", server.Addr(port))
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops polling and drains requests.
func waitForShutdown(services *service.Service, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	services.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
