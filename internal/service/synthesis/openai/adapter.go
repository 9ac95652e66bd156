// Package openai provides the OpenAI text-to-speech synthesis adapter.
package openai

import (
	"context"
	"errors"
	"io"

	goopenai "github.com/sashabaranov/go-openai"

	"ai-interaction-service/internal/artifacts"
	"ai-interaction-service/internal/service/synthesis"
)

// Adapter implements synthesis.Synthesizer using the OpenAI speech API.
// The artifact is durably written to the store before Synthesize
// returns; a partially written artifact is never visible.
type Adapter struct {
	client *goopenai.Client
	store  *artifacts.Store
	model  string
	voice  string
}

// New creates an OpenAI TTS adapter writing into the given artifact store.
func New(apiKey, baseURL, model, voice string, store *artifacts.Store) (*Adapter, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Adapter{
		client: goopenai.NewClientWithConfig(cfg),
		store:  store,
		model:  model,
		voice:  voice,
	}, nil
}

// Synthesize converts text into a stored mp3 artifact. The language
// code is accepted for interface compatibility; OpenAI voices infer the
// language from the input text.
func (a *Adapter) Synthesize(ctx context.Context, req synthesis.Request) (*synthesis.Artifact, error) {
	if req.Text == "" {
		return nil, &synthesis.Error{Op: "synthesize", Err: errors.New("empty input text")}
	}

	resp, err := a.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(a.model),
		Input:          req.Text,
		Voice:          goopenai.SpeechVoice(a.voice),
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, &synthesis.Error{Op: "create speech", Err: err}
	}
	defer resp.Close()

	content, err := io.ReadAll(resp)
	if err != nil {
		return nil, &synthesis.Error{Op: "read speech", Err: err}
	}

	id := artifacts.NewID()
	if err := a.store.Save(id, content); err != nil {
		return nil, &synthesis.Error{Op: "store artifact", Err: err}
	}

	return &synthesis.Artifact{ID: id, Content: content}, nil
}
