package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/config"
	httpapi "github.com/rovasEdu/servicos/internal/http"
	"github.com/rovasEdu/servicos/internal/logger"
	"github.com/rovasEdu/servicos/internal/ocr"
	"github.com/rovasEdu/servicos/internal/providers"
	"github.com/rovasEdu/servicos/internal/registry"
	"github.com/rovasEdu/servicos/internal/store"
)

func main() {
	// .env é opcional; variáveis já exportadas têm precedência.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "servicos")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting servicos",
		zap.String("storage_backend", cfg.StorageBackend),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	blobs, err := openBlobs(cfg)
	if err != nil {
		log.Fatal("Failed to open storage backend", zap.Error(err))
	}

	ctx := context.Background()

	reg := registry.New(blobs, cfg.SpecialtiesKey, log)
	if err := reg.Load(ctx); err != nil {
		log.Fatal("Failed to load specialty registry", zap.Error(err))
	}

	providerStore := providers.New(blobs, cfg.ProvidersKey, log)
	if err := providerStore.Load(ctx); err != nil {
		log.Fatal("Failed to load provider store", zap.Error(err))
	}

	log.Info("Stores loaded",
		zap.Int("providers", providerStore.Count()),
		zap.Int("specialties", len(reg.List())),
	)

	gemini := ocr.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiFlashModel, cfg.GeminiProModel, log)
	normalizer := ocr.NewNormalizer(cfg.DefaultDDD)
	session := ocr.NewSession(gemini, normalizer, providerStore, log)

	handlers := httpapi.NewHandlers(providerStore, reg, session, gemini, log)
	router := httpapi.NewRouter(handlers)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("HTTP server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", zap.Error(err))
	}

	log.Info("Service stopped")
}

// openBlobs seleciona o backend de persistência pela configuração.
func openBlobs(cfg *config.Config) (store.Blobs, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return store.NewFileBlobs(cfg.DataDir)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return store.NewRedisBlobs(client), nil
	case config.BackendPostgres:
		return store.NewPostgresBlobs(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
