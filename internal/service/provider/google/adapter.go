// Package google provides a Google Cloud Speech-to-Text transcription adapter.
package google

import (
	"context"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"ai-interaction-service/internal/service/provider"
)

// Adapter implements provider.Transcriber using Google Cloud
// Speech-to-Text non-streaming recognition.
type Adapter struct {
	client       *speech.Client
	languageCode string
}

// New creates a Google STT adapter.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
func New(ctx context.Context, languageCode string) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &Adapter{client: c, languageCode: languageCode}, nil
}

// Transcribe runs file-based recognition on the audio at audioPath.
// Encoding is left unspecified so the service detects it from the
// container where possible.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", &provider.Error{Op: "read audio", Err: err}
	}

	resp, err := a.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:     speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
			LanguageCode: a.languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return "", &provider.Error{Op: "recognize", Err: err}
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			sb.WriteString(result.Alternatives[0].Transcript)
		}
	}
	return sb.String(), nil
}

// Close releases the underlying gRPC connection.
func (a *Adapter) Close() error {
	return a.client.Close()
}
