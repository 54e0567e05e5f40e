// @title        Roster API
// @version      1.0
// @description  Read-only access to the persisted user directory.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/projecthelena/roster/internal/api"
	"github.com/projecthelena/roster/internal/config"
	"github.com/projecthelena/roster/internal/db"
	"github.com/projecthelena/roster/internal/logging"
)

func main() {
	logger := logging.New("roster")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.NewStore(storeConfig(cfg))
	if err != nil {
		logger.Fatalf("open %s store: %v", cfg.Backend, err)
	}
	defer func() { _ = store.Close() }()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(store, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatalf("listen: %v", err)
	}
	logger.Printf("[x] - server is running on port %d", cfg.Port)

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("Server forced to shutdown: %v", err)
	}

	logger.Println("Server exiting")
}

func storeConfig(cfg *config.Config) db.DBConfig {
	switch cfg.Backend {
	case config.BackendSQLite:
		return db.DBConfig{Type: db.BackendSQLite, Path: cfg.DBPath}
	case config.BackendPostgres:
		return db.DBConfig{Type: db.BackendPostgres, URL: cfg.DatabaseURL}
	default:
		return db.DBConfig{Type: db.BackendFile, Path: cfg.UsersFile}
	}
}
