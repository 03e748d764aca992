// Package usecase contains the business logic for speech synthesis.
package usecase

import (
	"context"

	"github.com/odiadev/keygate/internal/tts/domain"
)

// SpeechUseCase defines the business operations for speech synthesis.
type SpeechUseCase interface {
	// Synthesize validates the input and proxies it to the upstream provider.
	Synthesize(ctx context.Context, input *domain.SpeechInput) (*domain.SpeechResult, error)
}
