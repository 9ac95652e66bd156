package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAllowed(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"voice.mp3", true},
		{"voice.MP3", true},
		{"clip.wav", true},
		{"clip.webm", true},
		{"clip.flac", true},
		{"clip.m4a", true},
		{"clip.ogg", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
		{"double.mp3.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.allowed, FormatAllowed(tt.filename))
		})
	}
}

func TestAllowedFormats_Sorted(t *testing.T) {
	formats := AllowedFormats()
	assert.Len(t, formats, 10)
	assert.IsIncreasing(t, formats)
}

func TestError_NamesFailureClassAndUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Op: "chat completion", Err: cause}

	assert.Contains(t, err.Error(), "provider error")
	assert.ErrorIs(t, err, cause)
}
