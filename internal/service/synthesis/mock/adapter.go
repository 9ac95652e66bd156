// Package mock provides a mock synthesizer for testing and for running
// the service without remote credentials.
package mock

import (
	"context"
	"sync"

	"ai-interaction-service/internal/artifacts"
	"ai-interaction-service/internal/service/synthesis"
)

// Adapter implements synthesis.Synthesizer with deterministic fake
// audio bytes, still written through the real artifact store so
// download round-trips can be exercised.
type Adapter struct {
	mu sync.Mutex

	store *artifacts.Store
	Err   error

	calls       int
	lastRequest synthesis.Request
}

// New creates a mock synthesizer writing into the given artifact store.
func New(store *artifacts.Store) *Adapter {
	return &Adapter{store: store}
}

// Synthesize stores fake audio derived from the input text.
func (a *Adapter) Synthesize(ctx context.Context, req synthesis.Request) (*synthesis.Artifact, error) {
	a.mu.Lock()
	a.calls++
	a.lastRequest = req
	err := a.Err
	a.mu.Unlock()

	if err != nil {
		return nil, &synthesis.Error{Op: "synthesize", Err: err}
	}

	content := []byte("mock-audio:" + req.Text)
	id := artifacts.NewID()
	if storeErr := a.store.Save(id, content); storeErr != nil {
		return nil, &synthesis.Error{Op: "store artifact", Err: storeErr}
	}
	return &synthesis.Artifact{ID: id, Content: content}, nil
}

// Calls returns how many times Synthesize was invoked.
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// LastRequest returns the most recent request passed to Synthesize.
func (a *Adapter) LastRequest() synthesis.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastRequest
}
