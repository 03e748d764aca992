// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/odiadev/keygate/internal/tts/domain"
)

// MockSpeechUseCase is a mock implementation of SpeechUseCase for testing.
type MockSpeechUseCase struct {
	mock.Mock
}

// Synthesize mocks the Synthesize method of SpeechUseCase.
func (m *MockSpeechUseCase) Synthesize(
	ctx context.Context,
	input *domain.SpeechInput,
) (*domain.SpeechResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpeechResult), args.Error(1)
}
