// Package mock provides a mock provider adapter for testing and for
// running the service without remote credentials.
package mock

import (
	"context"
	"sync"
)

// Adapter implements provider.Completer and provider.Transcriber with
// canned responses. Call counts are tracked so tests can assert that a
// provider call did or did not happen.
type Adapter struct {
	mu sync.Mutex

	Response      string
	Transcription string
	Err           error

	completeCalls   int
	transcribeCalls int
}

// New creates a mock adapter with default canned responses.
func New() *Adapter {
	return &Adapter{
		Response:      "This is a mock completion.",
		Transcription: "this is a mock transcription",
	}
}

// Complete returns the canned response, or the configured error.
func (a *Adapter) Complete(ctx context.Context, text string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.completeCalls++
	if a.Err != nil {
		return "", a.Err
	}
	return a.Response, nil
}

// Transcribe returns the canned transcription, or the configured error.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transcribeCalls++
	if a.Err != nil {
		return "", a.Err
	}
	return a.Transcription, nil
}

// CompleteCalls returns how many times Complete was invoked.
func (a *Adapter) CompleteCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.completeCalls
}

// TranscribeCalls returns how many times Transcribe was invoked.
func (a *Adapter) TranscribeCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcribeCalls
}
