package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flag"
	"log/slog"

	"github.com/jamakers/platform/api"
	"github.com/jamakers/platform/internal/config"
	"github.com/jamakers/platform/internal/objectstore"
	"github.com/jamakers/platform/internal/storage/memory"
	"github.com/jamakers/platform/internal/storage/postgres"
	"github.com/jamakers/platform/internal/storage/remote"
	"github.com/jamakers/platform/internal/validate"
	"github.com/jamakers/platform/pkg/ollama"
	"github.com/jamakers/platform/pkg/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	ollama.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting server",
		slog.String("version", version),
		slog.String("buildTime", buildTime),
		slog.String("backend", cfg.StorageBackend),
	)

	ctx := context.Background()

	var store storage.Store
	var closeStore func() error
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("failed to open database", slog.Any("err", err))
			os.Exit(1)
		}
		store = pg
		closeStore = pg.Close
	case config.BackendRemote:
		store = remote.New(cfg.RemoteURL, logger)
	default:
		store = memory.New(logger)
	}

	objects := objectstore.New(cfg.Objects.PublicSearchPaths, cfg.Objects.PrivateDir, logger)

	schemas, err := validate.New()
	if err != nil {
		logger.Error("failed to load schemas", slog.Any("err", err))
		os.Exit(1)
	}

	chatCfg := ollama.DefaultConfig()
	chatCfg.BaseURL = cfg.Chat.BaseURL
	chatCfg.Model = cfg.Chat.Model
	chatCfg.Timeout = cfg.Chat.Timeout
	chat, err := ollama.NewDefaultClient(chatCfg)
	if err != nil {
		logger.Error("failed to create chat client", slog.Any("err", err))
		os.Exit(1)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, store, objects, chat, schemas)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.Any("err", err))
	}

	chat.Close()
	if closeStore != nil {
		if err := closeStore(); err != nil {
			logger.Error("error closing store", slog.Any("err", err))
		}
	}

	logger.Info("server exited")
}
