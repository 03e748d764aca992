// Package service provides the upstream TTS provider client.
package service

import (
	"context"

	"github.com/odiadev/keygate/internal/tts/domain"
)

// UpstreamClient defines the interface to the upstream TTS provider.
type UpstreamClient interface {
	// Synthesize sends a synthesis request upstream and returns the audio.
	Synthesize(ctx context.Context, input *domain.SpeechInput) (*domain.SpeechResult, error)
}
