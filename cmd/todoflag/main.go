package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/acme/todoflag/internal/database"
	"github.com/acme/todoflag/internal/logging"
	"github.com/acme/todoflag/internal/server"
	"github.com/acme/todoflag/internal/todo"
)

func main() {
	logger := logging.Setup(os.Getenv("TODOFLAG_LOG_LEVEL"), os.Getenv("TODOFLAG_LOG_FILE"))

	port := os.Getenv("TODOFLAG_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("TODOFLAG_DB_PATH")
	if dbPath == "" {
		dbPath = "todoflag.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	cfg := server.Config{
		Todo: todo.Config{
			DefaultName:     envString("TODOFLAG_DEFAULT_NAME", "Todo"),
			DefaultEstimate: envInt("TODOFLAG_DEFAULT_ESTIMATE", 15),
		},
		MaxUntilFlagged: envInt("TODOFLAG_MAX_UNTIL_FLAGGED", 0),
		MaxActiveTodos:  envInt("TODOFLAG_MAX_ACTIVE_TODOS", 0),
		SweepInterval:   envDuration("TODOFLAG_SWEEP_INTERVAL", time.Minute),
		CleanupInterval: envDuration("TODOFLAG_CLEANUP_INTERVAL", time.Hour),
	}

	srv := server.New(db, cfg, logger)

	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	srv.Scheduler().Start(schedCtx)
	defer srv.Scheduler().Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("todoflag listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return d
}
