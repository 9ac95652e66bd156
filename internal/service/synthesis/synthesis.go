// Package synthesis converts finalized response text into stored audio
// artifacts.
package synthesis

import (
	"context"
	"fmt"
)

// DefaultLanguage is used when a request does not specify a language code.
const DefaultLanguage = "en"

// Request is one synthesis call.
type Request struct {
	Text     string
	Language string // defaults to DefaultLanguage when empty
}

// Artifact is the result of a successful synthesis: the stored
// identifier and the synthesized bytes.
type Artifact struct {
	ID      string
	Content []byte
}

// Synthesizer produces one complete, durably stored audio artifact per
// call. The artifact identifier is fresh and collision-free with
// overwhelming probability.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Artifact, error)
}

// Error wraps any encoding or remote service failure during synthesis.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("synthesis error: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
