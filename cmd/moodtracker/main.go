package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodtracker/internal/config"
	"moodtracker/internal/db"
	httpx "moodtracker/internal/http"
	"moodtracker/internal/logger"
	"moodtracker/internal/mood"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger.New(cfg.LogLevel, os.Stdout)

	repo, err := db.Open(context.Background(), cfg.DatabaseURL, cfg.MongoDatabase)
	if err != nil {
		slog.Error("open storage", "error", err)
		os.Exit(1)
	}

	svc := mood.NewService(repo)
	r := httpx.NewRouter(cfg, svc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if err := repo.Close(shutdownCtx); err != nil {
		slog.Warn("close storage", "error", err)
	}
}
