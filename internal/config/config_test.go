package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"HTTP_PORT", "OBS_PORT", "PROVIDER", "TRANSCRIBE_PROVIDER",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "CHAT_MODEL", "TRANSCRIBE_MODEL",
		"PROVIDER_TIMEOUT", "TTS_MODEL", "TTS_VOICE", "SYNTH_LANGUAGE",
		"DATABASE_PATH", "AUDIO_DIR", "ARTIFACT_TTL", "ARTIFACT_SWEEP_SPEC",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != "5001" {
		t.Errorf("expected default HTTP port '5001', got %s", cfg.HTTPPort)
	}
	if cfg.ObsPort != "9090" {
		t.Errorf("expected default observability port '9090', got %s", cfg.ObsPort)
	}
	if cfg.Provider != "openai" {
		t.Errorf("expected default provider 'openai', got %s", cfg.Provider)
	}
	if cfg.TranscribeProvider != "openai" {
		t.Errorf("expected transcribe provider to fall back to provider, got %s", cfg.TranscribeProvider)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("expected default chat model 'gpt-4', got %s", cfg.ChatModel)
	}
	if cfg.TranscribeModel != "whisper-1" {
		t.Errorf("expected default transcribe model 'whisper-1', got %s", cfg.TranscribeModel)
	}
	if cfg.ProviderTimeout != 60*time.Second {
		t.Errorf("expected default provider timeout 60s, got %v", cfg.ProviderTimeout)
	}
	if cfg.TTSModel != "tts-1" {
		t.Errorf("expected default TTS model 'tts-1', got %s", cfg.TTSModel)
	}
	if cfg.TTSVoice != "alloy" {
		t.Errorf("expected default TTS voice 'alloy', got %s", cfg.TTSVoice)
	}
	if cfg.SynthLanguage != "en" {
		t.Errorf("expected default synthesis language 'en', got %s", cfg.SynthLanguage)
	}
	if cfg.DatabasePath != "logs.db" {
		t.Errorf("expected default database path 'logs.db', got %s", cfg.DatabasePath)
	}
	if cfg.AudioDir != "static/audio" {
		t.Errorf("expected default audio dir 'static/audio', got %s", cfg.AudioDir)
	}
	if cfg.ArtifactTTL != 0 {
		t.Errorf("expected default artifact TTL 0, got %v", cfg.ArtifactTTL)
	}
	if cfg.ArtifactSweepSpec != "@hourly" {
		t.Errorf("expected default sweep spec '@hourly', got %s", cfg.ArtifactSweepSpec)
	}
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled by default")
	}
	if cfg.Kafka.Topic != "ai.interactions.logged" {
		t.Errorf("expected default Kafka topic 'ai.interactions.logged', got %s", cfg.Kafka.Topic)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.LogLevel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)

	os.Setenv("HTTP_PORT", "8080")
	os.Setenv("PROVIDER", "mock")
	os.Setenv("TRANSCRIBE_PROVIDER", "google")
	os.Setenv("OPENAI_API_KEY", "sk-test")
	os.Setenv("CHAT_MODEL", "gpt-4o")
	os.Setenv("PROVIDER_TIMEOUT", "10s")
	os.Setenv("DATABASE_PATH", "/tmp/test.db")
	os.Setenv("ARTIFACT_TTL", "24h")
	os.Setenv("KAFKA_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port '8080', got %s", cfg.HTTPPort)
	}
	if cfg.Provider != "mock" {
		t.Errorf("expected provider 'mock', got %s", cfg.Provider)
	}
	if cfg.TranscribeProvider != "google" {
		t.Errorf("expected transcribe provider 'google', got %s", cfg.TranscribeProvider)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("expected api key 'sk-test', got %s", cfg.OpenAIAPIKey)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("expected chat model 'gpt-4o', got %s", cfg.ChatModel)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("expected provider timeout 10s, got %v", cfg.ProviderTimeout)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("expected database path '/tmp/test.db', got %s", cfg.DatabasePath)
	}
	if cfg.ArtifactTTL != 24*time.Hour {
		t.Errorf("expected artifact TTL 24h, got %v", cfg.ArtifactTTL)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected Kafka enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "k1:9092" {
		t.Errorf("expected two brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_TranscribeProvider_FallsBackToProvider(t *testing.T) {
	clearEnv(t)
	os.Setenv("PROVIDER", "mock")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TranscribeProvider != "mock" {
		t.Errorf("expected transcribe provider to fall back to 'mock', got %s", cfg.TranscribeProvider)
	}
}

func TestLoad_InvalidDuration_Errors(t *testing.T) {
	clearEnv(t)
	os.Setenv("PROVIDER_TIMEOUT", "not-a-duration")
	defer clearEnv(t)

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid PROVIDER_TIMEOUT")
	}
}
