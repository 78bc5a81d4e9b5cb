package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bubblesea/internal/adapters/httpapi"
	"bubblesea/internal/bootstrap"
	"bubblesea/internal/config"
	"bubblesea/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	addr := flag.String("addr", cfg.Server.Addr, "listen address")
	static := flag.String("static", cfg.Server.Static, "directory served at / (empty to disable)")
	store := flag.String("store", cfg.Store, "store to serve: sqlite or dir")
	db := flag.String("db", cfg.DB, "sqlite database file")
	dir := flag.String("dir", cfg.Dir, "directory of .bubble files")
	flag.Parse()

	cfg.Store, cfg.DB, cfg.Dir = *store, *db, *dir
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		OutputPath:  cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	backend, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("store", cfg.Store), zap.Error(err))
	}
	defer backend.Close()

	opts := []httpapi.Option{httpapi.WithCORSOrigins(cfg.Server.CORSOrigins...)}
	if *static != "" {
		opts = append(opts, httpapi.WithStaticDir(config.ExpandHome(*static)))
	}
	handler := httpapi.NewRouter(backend, logger.Named("http"), opts...).Setup()

	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", *addr),
			zap.String("store", cfg.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
