// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Provider names accepted by PROVIDER / TRANSCRIBE_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
	ProviderMock   = "mock"
)

// Config holds all externally supplied settings. Every value has a
// default so the service starts with nothing but OPENAI_API_KEY set.
type Config struct {
	// Service ports
	HTTPPort string `env:"HTTP_PORT" envDefault:"5001"`
	ObsPort  string `env:"OBS_PORT" envDefault:"9090"`

	// Provider settings
	Provider           string        `env:"PROVIDER" envDefault:"openai"`
	TranscribeProvider string        `env:"TRANSCRIBE_PROVIDER"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL"`
	ChatModel          string        `env:"CHAT_MODEL" envDefault:"gpt-4"`
	TranscribeModel    string        `env:"TRANSCRIBE_MODEL" envDefault:"whisper-1"`
	TranscribeLanguage string        `env:"TRANSCRIBE_LANGUAGE" envDefault:"en-US"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"60s"`

	// Speech synthesis
	TTSModel      string `env:"TTS_MODEL" envDefault:"tts-1"`
	TTSVoice      string `env:"TTS_VOICE" envDefault:"alloy"`
	SynthLanguage string `env:"SYNTH_LANGUAGE" envDefault:"en"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"logs.db"`
	AudioDir     string `env:"AUDIO_DIR" envDefault:"static/audio"`

	// Artifact retention; zero TTL keeps artifacts forever.
	ArtifactTTL       time.Duration `env:"ARTIFACT_TTL" envDefault:"0"`
	ArtifactSweepSpec string        `env:"ARTIFACT_SWEEP_SPEC" envDefault:"@hourly"`

	// Interaction events
	Kafka KafkaConfig

	// Observability
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// KafkaConfig configures the interaction event publisher. Disabled by
// default; the publisher degrades to log-only mode.
type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"ai.interactions.logged"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.TranscribeProvider == "" {
		cfg.TranscribeProvider = cfg.Provider
	}
	return cfg, nil
}
