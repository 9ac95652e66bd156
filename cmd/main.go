package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"ai-interaction-service/internal/app"
	"ai-interaction-service/internal/artifacts"
	"ai-interaction-service/internal/config"
	"ai-interaction-service/internal/events"
	httpapi "ai-interaction-service/internal/http"
	"ai-interaction-service/internal/observability"
	"ai-interaction-service/internal/observability/metrics"
	"ai-interaction-service/internal/service/analytics"
	"ai-interaction-service/internal/service/interaction"
	"ai-interaction-service/internal/service/provider"
	googleprovider "ai-interaction-service/internal/service/provider/google"
	providermock "ai-interaction-service/internal/service/provider/mock"
	openaiprovider "ai-interaction-service/internal/service/provider/openai"
	"ai-interaction-service/internal/service/synthesis"
	synthmock "ai-interaction-service/internal/service/synthesis/mock"
	openaisynth "ai-interaction-service/internal/service/synthesis/openai"
	"ai-interaction-service/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	application := app.New(cfg)
	logger := application.Logger
	if err := application.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start application")
	}

	logStore, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to open interaction log")
	}
	defer logStore.Close()

	artifactStore, err := artifacts.NewStore(cfg.AudioDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.AudioDir).Msg("Failed to create artifact store")
	}

	completer, transcriber, synthesizer, cleanup, err := buildProviders(cfg, artifactStore)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to construct provider gateway")
	}
	defer cleanup()

	publisher := events.New(&events.Config{
		Enabled: cfg.Kafka.Enabled,
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer publisher.Close()

	orch := interaction.New(interaction.Config{
		Completer:       completer,
		Transcriber:     transcriber,
		Synthesizer:     synthesizer,
		Log:             logStore,
		Artifacts:       artifactStore,
		Publisher:       publisher,
		ProviderTimeout: cfg.ProviderTimeout,
		SynthLanguage:   cfg.SynthLanguage,
		Logger:          logger,
	})

	// Artifact retention sweep; disabled unless a TTL is configured.
	sweeper := cron.New()
	if cfg.ArtifactTTL > 0 {
		_, err := sweeper.AddFunc(cfg.ArtifactSweepSpec, func() {
			removed, sweepErr := artifactStore.Sweep(cfg.ArtifactTTL)
			if sweepErr != nil {
				logger.Error().Err(sweepErr).Msg("Artifact sweep failed")
				return
			}
			metrics.DefaultMetrics.RecordArtifactSweep(removed)
		})
		if err != nil {
			logger.Fatal().Err(err).Str("spec", cfg.ArtifactSweepSpec).Msg("Invalid artifact sweep schedule")
		}
		sweeper.Start()
		defer sweeper.Stop()
	}

	obsServer := observability.NewServer(":" + cfg.ObsPort)
	obsServer.Start()

	handlers := httpapi.NewHandlers(orch, analytics.New(logStore), artifactStore, logger)
	apiServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpapi.NewRouter(handlers),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", apiServer.Addr).Msg("AI Interaction service started")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP shutdown failed")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Observability shutdown failed")
	}
	application.Shutdown()
}

// buildProviders constructs the completion, transcription, and synthesis
// adapters selected by configuration. The returned cleanup closes any
// adapter holding a connection.
func buildProviders(cfg *config.Config, artifactStore *artifacts.Store) (
	provider.Completer, provider.Transcriber, synthesis.Synthesizer, func(), error,
) {
	cleanup := func() {}

	var completer provider.Completer
	var transcriber provider.Transcriber
	var synthesizer synthesis.Synthesizer

	switch cfg.Provider {
	case config.ProviderMock:
		m := providermock.New()
		completer = m
		transcriber = m
		synthesizer = synthmock.New(artifactStore)
	default:
		oa, err := openaiprovider.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel, cfg.TranscribeModel)
		if err != nil {
			return nil, nil, nil, cleanup, err
		}
		completer = oa
		transcriber = oa

		tts, err := openaisynth.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TTSModel, cfg.TTSVoice, artifactStore)
		if err != nil {
			return nil, nil, nil, cleanup, err
		}
		synthesizer = tts
	}

	switch cfg.TranscribeProvider {
	case config.ProviderGoogle:
		g, err := googleprovider.New(context.Background(), cfg.TranscribeLanguage)
		if err != nil {
			return nil, nil, nil, cleanup, err
		}
		transcriber = g
		cleanup = func() { _ = g.Close() }
	case config.ProviderMock:
		if _, ok := transcriber.(*providermock.Adapter); !ok {
			transcriber = providermock.New()
		}
	}

	return completer, transcriber, synthesizer, cleanup, nil
}
