// Package openai provides the OpenAI completion and transcription adapter.
package openai

import (
	"context"
	"errors"

	goopenai "github.com/sashabaranov/go-openai"

	"ai-interaction-service/internal/service/provider"
)

// Adapter implements provider.Completer and provider.Transcriber using
// the OpenAI chat completions and Whisper APIs.
type Adapter struct {
	client          *goopenai.Client
	chatModel       string
	transcribeModel string
}

// New creates an OpenAI adapter. The API credential is required; its
// absence is a configuration error, not something to discover on the
// first network call.
func New(apiKey, baseURL, chatModel, transcribeModel string) (*Adapter, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Adapter{
		client:          goopenai.NewClientWithConfig(cfg),
		chatModel:       chatModel,
		transcribeModel: transcribeModel,
	}, nil
}

// Complete sends a single-turn chat completion and returns the model's
// primary text output.
func (a *Adapter) Complete(ctx context.Context, text string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: a.chatModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", &provider.Error{Op: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &provider.Error{Op: "chat completion", Err: errors.New("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe sends the audio file at audioPath to Whisper.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := a.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    a.transcribeModel,
		FilePath: audioPath,
	})
	if err != nil {
		return "", &provider.Error{Op: "transcription", Err: err}
	}
	return resp.Text, nil
}
