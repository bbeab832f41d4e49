package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briefd/briefd/internal/api"
	"github.com/briefd/briefd/internal/cache"
	"github.com/briefd/briefd/internal/config"
	"github.com/briefd/briefd/internal/model"
	"github.com/briefd/briefd/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the inference backend and model cache.
	backend := model.NewHTTPClient(cfg.InferenceURL, cfg.InferenceAPIKey)
	stats := model.NewCallStats(time.Hour)
	models := model.NewCache(backend, log)

	// Initialize the pipeline with its interceptor chain.
	opts := pipeline.DefaultOptions()
	opts.MaxConcurrentChunks = cfg.MaxConcurrentChunks
	opts.KeywordCount = cfg.KeywordCount
	pipe := pipeline.New(models, stats, log, opts)

	results, err := cache.New[pipeline.Result](cfg.CacheSize)
	if err != nil {
		log.Error("create result cache", "error", err)
		os.Exit(1)
	}

	summarize := pipeline.Chain(pipe.Summarize,
		pipeline.WithValidation(pipe),
		pipeline.WithTiming(log),
		pipeline.WithMemoryGuard(cfg.MaxHeapBytes, log),
		pipeline.WithCache(results),
	)

	// Initialize the async job runner for file uploads.
	orch := pipeline.NewOrchestrator(summarize, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(summarize, orch, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		backend.Close()
	}()

	log.Info("starting briefd", "port", cfg.Port, "default_model", cfg.DefaultModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
