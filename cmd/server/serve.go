package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kruthisver/AI-Interview-Coach/internal/config"
	"github.com/Kruthisver/AI-Interview-Coach/internal/database"
	"github.com/Kruthisver/AI-Interview-Coach/internal/handlers"
	"github.com/Kruthisver/AI-Interview-Coach/internal/interview"
	"github.com/Kruthisver/AI-Interview-Coach/internal/logger"
	"github.com/Kruthisver/AI-Interview-Coach/internal/middleware"
	"github.com/Kruthisver/AI-Interview-Coach/internal/router"
	"github.com/Kruthisver/AI-Interview-Coach/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command) error {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Printf("✗ %v", err)
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("json") {
		cfg.LogJSON, _ = flags.GetBool("json")
	}
	if flags.Changed("debug") {
		cfg.LogDebug, _ = flags.GetBool("debug")
	}

	lg, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer lg.Sync()

	lg.Info("starting the interview coach",
		zap.String("version", version),
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.ModelName()),
	)

	// ──── Step 2: Initialize Language Model Gateway ────
	settings := interview.DefaultSettings()
	settings.ModelID = cfg.ModelName()
	settings.Timeout = cfg.ModelTimeout
	settings.DefaultJobRole = cfg.DefaultJobRole

	var llm services.Generator
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiGateway(cmd.Context(), cfg.GeminiAPIKey, settings.Sampling, lg)
		if err != nil {
			lg.Error("gemini client initialization failed", zap.Error(err))
			return err
		}
		defer gemini.Close()
		llm = gemini
	default:
		llm = services.NewOllamaGateway(cfg.OllamaURL, settings.Sampling, lg)
	}
	lg.Info("language model gateway ready", zap.String("provider", cfg.LLMProvider))

	// ──── Step 3: Initialize Rate Limiter ────
	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		var store middleware.LimiterStore
		if cfg.RedisURL != "" {
			client, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				lg.Error("redis connection failed", zap.Error(err))
				return err
			}
			defer client.Close()
			store = middleware.NewRedisLimiterStore(client, cfg.RateLimitPerMinute, time.Minute)
			lg.Info("rate limiter backed by redis", zap.Int("per_minute", cfg.RateLimitPerMinute))
		} else {
			mem := middleware.NewMemoryLimiterStore(cfg.RateLimitPerMinute, time.Minute)
			defer mem.Close()
			store = mem
			lg.Info("rate limiter in memory", zap.Int("per_minute", cfg.RateLimitPerMinute))
		}
		limiter = middleware.NewRateLimiter(store, lg)
	}

	// ──── Step 4: Initialize Services and Handlers ────
	interviewService := services.NewInterviewService(llm, settings, lg)
	fileExtractService := services.NewFileExtractService()
	interviewHandler := handlers.NewInterviewHandler(interviewService, fileExtractService, cfg.MaxUploadBytes, lg)

	// ──── Step 5: Start HTTP Server ────
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     router.New(interviewHandler, limiter, cfg.TrustProxy, lg),
		ReadTimeout: 30 * time.Second,
		// A single request may wait on the model for the full timeout.
		WriteTimeout: cfg.ModelTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lg.Info("interview coach ready", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
