package tts

import (
	"context"
	"fmt"
)

// Client defines the interface for text-to-speech providers.
type Client interface {
	// Synthesize converts text to speech in the given language and returns
	// the raw audio bytes.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// UpstreamError reports a non-success status from the synthesis endpoint.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Google Translate API error: %d", e.Status)
}
