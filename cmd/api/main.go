package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ariahq/chatterbox/backend/internal/config"
	"github.com/ariahq/chatterbox/backend/internal/engine"
	"github.com/ariahq/chatterbox/backend/internal/handler"
	"github.com/ariahq/chatterbox/backend/internal/model/persona"
	chatservice "github.com/ariahq/chatterbox/backend/internal/service/chat"
	"github.com/ariahq/chatterbox/backend/internal/storage"
	"github.com/ariahq/chatterbox/backend/internal/voice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("failed to load .env file, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping default")
	}

	personaStore := persona.NewMemoryStore(persona.Seed())

	backend := newBackend(ctx, cfg.Storage)
	store := storage.New(backend, log.Logger, storage.Config{Prefix: cfg.Storage.Prefix})

	chatSvc := chatservice.NewService(personaStore, store, log.Logger,
		engine.WithDelayRange(cfg.Engine.MinDelay, cfg.Engine.MaxDelay))

	// No platform speech binding ships with the backend; the adapter
	// reports both capabilities as unsupported until one is injected.
	adapter := voice.New(nil, nil, log.Logger, voice.Config{
		ListenTimeout: cfg.Voice.ListenTimeout,
		SpeakTimeout:  cfg.Voice.SpeakTimeout,
	})

	router := handler.NewRouter(personaStore, chatSvc, store, adapter, log.Logger)

	startServer(ctx, cfg.Server, router)
}

// newBackend selects Redis when configured, otherwise the in-memory
// fallback. A Redis that fails its ping still gets used: the store's
// fire-and-forget policy degrades every operation silently.
func newBackend(ctx context.Context, cfg config.StorageConfig) storage.Backend {
	if cfg.RedisAddr == "" {
		log.Info().Msg("no REDIS_ADDR configured, persisting to memory only")
		return storage.NewMemoryBackend()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, saves will be dropped until it recovers")
	} else {
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis storage backend initialized")
	}

	return storage.NewRedisBackend(client)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("chatterbox backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
