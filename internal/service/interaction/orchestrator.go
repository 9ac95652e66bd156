// Package interaction coordinates one end-to-end chat or transcription
// request: validate input, call the provider, optionally synthesize
// audio, and durably log the result.
package interaction

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-interaction-service/internal/artifacts"
	"ai-interaction-service/internal/events"
	"ai-interaction-service/internal/models"
	"ai-interaction-service/internal/observability/metrics"
	"ai-interaction-service/internal/service/provider"
	"ai-interaction-service/internal/service/synthesis"
	"ai-interaction-service/internal/store"
)

// Interaction outcomes as recorded in metrics.
const (
	statusOK              = "ok"
	statusRejectedInput   = "rejected_input"
	statusProviderFailed  = "provider_failed"
	statusSynthesisFailed = "synthesis_failed"
	statusLoggingFailed   = "logging_failed"
)

// ValidationError marks bad or missing client input. It is the client's
// fault and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// ChatResult is the composed payload of a successful chat interaction.
type ChatResult struct {
	Answer     string
	ArtifactID string // empty unless voice output was produced
	RecordID   uint
}

// TranscribeResult is the payload of a successful transcription.
type TranscribeResult struct {
	Transcription string
	RecordID      uint
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Completer       provider.Completer
	Transcriber     provider.Transcriber
	Synthesizer     synthesis.Synthesizer
	Log             *store.Store
	Artifacts       *artifacts.Store
	Publisher       *events.Publisher
	ProviderTimeout time.Duration
	SynthLanguage   string
	Logger          zerolog.Logger
}

// Orchestrator runs the interaction pipeline. Provider and synthesis
// calls are blocking within one request; the store serializes appends
// across requests.
type Orchestrator struct {
	completer   provider.Completer
	transcriber provider.Transcriber
	synth       synthesis.Synthesizer
	log         *store.Store
	artifacts   *artifacts.Store
	publisher   *events.Publisher
	timeout     time.Duration
	synthLang   string
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// New creates an Orchestrator from the given collaborators.
func New(cfg Config) *Orchestrator {
	return &Orchestrator{
		completer:   cfg.Completer,
		transcriber: cfg.Transcriber,
		synth:       cfg.Synthesizer,
		log:         cfg.Log,
		artifacts:   cfg.Artifacts,
		publisher:   cfg.Publisher,
		timeout:     cfg.ProviderTimeout,
		synthLang:   cfg.SynthLanguage,
		metrics:     metrics.DefaultMetrics,
		logger:      cfg.Logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Chat handles one chat interaction. Only successful provider responses
// are persisted; a store failure fails the whole request since an
// answered but unlogged interaction is not allowed. Synthesis failure
// aborts the interaction too: nothing is logged and nothing returned.
func (o *Orchestrator) Chat(ctx context.Context, message string, voice bool) (*ChatResult, error) {
	start := time.Now()

	if strings.TrimSpace(message) == "" {
		o.metrics.RecordInteraction(models.RequestTypeChat, statusRejectedInput, time.Since(start).Seconds())
		return nil, &ValidationError{Reason: "no message provided"}
	}

	callCtx, cancel := o.callContext(ctx)
	defer cancel()

	providerStart := time.Now()
	answer, err := o.completer.Complete(callCtx, message)
	o.metrics.RecordProviderCall("complete", err, time.Since(providerStart).Seconds())
	if err != nil {
		o.metrics.RecordInteraction(models.RequestTypeChat, statusProviderFailed, time.Since(start).Seconds())
		o.logger.Error().Err(err).Msg("Completion provider call failed")
		return nil, err
	}

	artifactID := ""
	if voice {
		synthCtx, synthCancel := o.callContext(ctx)
		defer synthCancel()

		synthStart := time.Now()
		artifact, synthErr := o.synth.Synthesize(synthCtx, synthesis.Request{
			Text:     answer,
			Language: o.synthLang,
		})
		if synthErr != nil {
			o.metrics.RecordSynthesis(synthErr, time.Since(synthStart).Seconds(), 0)
			o.metrics.RecordInteraction(models.RequestTypeChat, statusSynthesisFailed, time.Since(start).Seconds())
			o.logger.Error().Err(synthErr).Msg("Speech synthesis failed")
			return nil, synthErr
		}
		o.metrics.RecordSynthesis(nil, time.Since(synthStart).Seconds(), len(artifact.Content))
		artifactID = artifact.ID
	}

	rec := &models.InteractionRecord{
		Timestamp:   time.Now().Format(time.RFC3339),
		UserQuery:   message,
		AIResponse:  answer,
		RequestType: models.RequestTypeChat,
		VoiceOutput: artifactID != "",
	}
	recordID, err := o.appendRecord(ctx, rec)
	if err != nil {
		o.metrics.RecordInteraction(models.RequestTypeChat, statusLoggingFailed, time.Since(start).Seconds())
		return nil, err
	}

	o.publishLogged(ctx, rec)
	o.metrics.RecordInteraction(models.RequestTypeChat, statusOK, time.Since(start).Seconds())
	o.logger.Info().
		Uint("recordId", recordID).
		Bool("voiceOutput", rec.VoiceOutput).
		Msg("Chat interaction logged")

	return &ChatResult{Answer: answer, ArtifactID: artifactID, RecordID: recordID}, nil
}

// Transcribe handles one transcription interaction. The uploaded file
// is spooled to disk for the provider call and removed unconditionally
// afterwards, whether the call succeeded or not.
func (o *Orchestrator) Transcribe(ctx context.Context, filename string, file io.Reader) (*TranscribeResult, error) {
	start := time.Now()

	if filename == "" || file == nil {
		o.metrics.RecordInteraction(models.RequestTypeTranscribe, statusRejectedInput, time.Since(start).Seconds())
		return nil, &ValidationError{Reason: "no audio file provided"}
	}
	if !provider.FormatAllowed(filename) {
		o.metrics.RecordInteraction(models.RequestTypeTranscribe, statusRejectedInput, time.Since(start).Seconds())
		return nil, &ValidationError{
			Reason: fmt.Sprintf("unsupported file format, allowed: %s", strings.Join(provider.AllowedFormats(), ", ")),
		}
	}

	path, err := o.artifacts.Spool(filename, file)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil {
			o.logger.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove temp upload")
		}
	}()

	callCtx, cancel := o.callContext(ctx)
	defer cancel()

	providerStart := time.Now()
	text, err := o.transcriber.Transcribe(callCtx, path)
	o.metrics.RecordProviderCall("transcribe", err, time.Since(providerStart).Seconds())
	if err != nil {
		o.metrics.RecordInteraction(models.RequestTypeTranscribe, statusProviderFailed, time.Since(start).Seconds())
		o.logger.Error().Err(err).Msg("Transcription provider call failed")
		return nil, err
	}

	rec := &models.InteractionRecord{
		Timestamp:   time.Now().Format(time.RFC3339),
		UserQuery:   text,
		AIResponse:  text,
		RequestType: models.RequestTypeTranscribe,
	}
	recordID, err := o.appendRecord(ctx, rec)
	if err != nil {
		o.metrics.RecordInteraction(models.RequestTypeTranscribe, statusLoggingFailed, time.Since(start).Seconds())
		return nil, err
	}

	o.publishLogged(ctx, rec)
	o.metrics.RecordInteraction(models.RequestTypeTranscribe, statusOK, time.Since(start).Seconds())
	o.logger.Info().Uint("recordId", recordID).Msg("Transcription interaction logged")

	return &TranscribeResult{Transcription: text, RecordID: recordID}, nil
}

func (o *Orchestrator) appendRecord(ctx context.Context, rec *models.InteractionRecord) (uint, error) {
	appendStart := time.Now()
	recordID, err := o.log.Append(ctx, rec)
	o.metrics.RecordAppend(err, time.Since(appendStart).Seconds())
	if err != nil {
		o.logger.Error().Err(err).Msg("Interaction log append failed")
		return 0, err
	}
	return recordID, nil
}

func (o *Orchestrator) publishLogged(ctx context.Context, rec *models.InteractionRecord) {
	if o.publisher == nil {
		return
	}
	// Best-effort; publish failures are logged by the publisher.
	_ = o.publisher.PublishInteraction(ctx, models.InteractionEvent{
		EventType:   "interaction.logged",
		RecordID:    rec.ID,
		Timestamp:   rec.Timestamp,
		UserQuery:   rec.UserQuery,
		RequestType: rec.RequestType,
		VoiceOutput: rec.VoiceOutput,
	})
}

func (o *Orchestrator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.timeout)
}
