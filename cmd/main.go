package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "nevochat/docs"
	"nevochat/internal/config"
	"nevochat/internal/handlers"
	"nevochat/internal/logger"
	"nevochat/internal/repository"
	"nevochat/internal/repository/db"
	"nevochat/internal/server"
	"nevochat/internal/service"
)

const configDir = "configs"

// @title           Nevo Chat API
// @version         1.0
// @description     Minimal chat backend: accounts, sessions and a single shared message log.
// @BasePath        /

// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
func main() {
	// load configs/config.yml + NEVOCHAT_* env
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB and apply migrations
	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		BcryptCost:       cfg.Auth.BcryptCost,
		SessionTTL:       cfg.Session.TTL,
		MaxMessageLength: cfg.Chat.MaxMessageLength,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		TTL:    cfg.Session.TTL,
	})

	// bind, then serve in the background
	srv := server.New(cfg.Server, apiHandler.InitRoutes())
	if err := srv.Listen(); err != nil {
		log.Fatalw("error binding server address", "port", cfg.Server.Port, "err", err)
	}
	log.Infow("server started", "addr", srv.Addr().String(), "db", cfg.DB.Path)
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, cfg.Server.ShutdownTimeout, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.DB, log *logger.Logger) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Infow("opening sqlite", "path", cfg.Path)
	return db.InitDB(ctx, cfg)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Serve(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
