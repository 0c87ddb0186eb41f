package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secure_finance_manager/internal/crypto"
	"secure_finance_manager/internal/handlers"
	"secure_finance_manager/internal/identity"
	"secure_finance_manager/internal/logger"
	"secure_finance_manager/internal/repository"
	"secure_finance_manager/internal/repository/db"
	"secure_finance_manager/internal/server"
	"secure_finance_manager/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config.yml (+ FINANCE_* env overrides)
	cfg, err := loadConfig()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	cipher, err := crypto.NewFieldCipherFromPassphrase(cfg.CryptoPassphrase, cfg.CryptoSalt)
	if err != nil {
		log.Fatalw("failed to init field cipher", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB, cipher)
	cache, err := loadIdentities(repos.Users)
	if err != nil {
		log.Fatalw("failed to load users", "err", err)
	}
	log.Infow("identity cache loaded", "users", cache.Len())

	services := service.NewService(repos, cache, service.AuthConfig{
		SigningKey: cfg.SigningKey,
		TokenTTL:   cfg.TokenTTL,
	}, log.With("component", "service"))
	apiHandler := handlers.NewHandler(services, log.With("component", "http"), cfg.BasePath)

	// start HTTP server
	srv := server.New(cfg.Server)
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg appConfig, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// loadIdentities fills the username cache from every stored user.
func loadIdentities(users repository.Users) (*identity.Cache, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	all, err := users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	cache := identity.NewCache()
	cache.Load(all)
	return cache, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
