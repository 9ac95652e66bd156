// Package provider defines the gateway to external completion and
// transcription providers.
package provider

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Completer sends text to a remote completion provider and returns the
// provider's primary text output unmodified.
type Completer interface {
	Complete(ctx context.Context, text string) (string, error)
}

// Transcriber converts an audio file on disk into text. Providers do
// not retry; a failed call is surfaced to the caller as-is.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Error wraps any network, authentication, rate-limit, or malformed
// response failure from a remote provider. Callers treat all provider
// failures identically.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// allowedFormats is the fixed allow-list of audio upload formats.
var allowedFormats = map[string]bool{
	"flac": true,
	"m4a":  true,
	"mp3":  true,
	"mp4":  true,
	"mpeg": true,
	"mpga": true,
	"oga":  true,
	"ogg":  true,
	"wav":  true,
	"webm": true,
}

// FormatAllowed reports whether the file's extension is in the
// transcription allow-list.
func FormatAllowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return allowedFormats[ext]
}

// AllowedFormats returns the allow-list, sorted, for error messages.
func AllowedFormats() []string {
	out := make([]string, 0, len(allowedFormats))
	for f := range allowedFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
