package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/tts/domain"
)

// mockUpstreamClient is a mock implementation of service.UpstreamClient.
type mockUpstreamClient struct {
	mock.Mock
}

func (m *mockUpstreamClient) Synthesize(
	ctx context.Context,
	input *domain.SpeechInput,
) (*domain.SpeechResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpeechResult), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSpeechUseCaseSynthesize(t *testing.T) {
	ctx := context.Background()
	const maxTextChars = 600

	t.Run("Success_AppliesDefaults", func(t *testing.T) {
		upstream := new(mockUpstreamClient)
		useCase := NewSpeechUseCase(upstream, maxTextChars, testLogger())

		expected := &domain.SpeechResult{
			Audio:       []byte("mp3-bytes"),
			ContentType: domain.AudioContentType,
		}
		upstream.On("Synthesize", ctx, mock.MatchedBy(func(input *domain.SpeechInput) bool {
			return input.Voice == domain.DefaultVoice && input.Format == domain.DefaultFormat
		})).Return(expected, nil)

		result, err := useCase.Synthesize(ctx, &domain.SpeechInput{Text: "Hello"})
		require.NoError(t, err)
		assert.Equal(t, expected, result)
		upstream.AssertExpectations(t)
	})

	t.Run("Success_KeepsExplicitParameters", func(t *testing.T) {
		upstream := new(mockUpstreamClient)
		useCase := NewSpeechUseCase(upstream, maxTextChars, testLogger())

		upstream.On("Synthesize", ctx, mock.MatchedBy(func(input *domain.SpeechInput) bool {
			return input.Voice == "naija_male" && input.Format == "wav_44k"
		})).Return(&domain.SpeechResult{Audio: []byte("audio")}, nil)

		_, err := useCase.Synthesize(ctx, &domain.SpeechInput{
			Text:   "Hello",
			Voice:  "naija_male",
			Format: "wav_44k",
		})
		require.NoError(t, err)
		upstream.AssertExpectations(t)
	})

	t.Run("Failure_BlankText", func(t *testing.T) {
		upstream := new(mockUpstreamClient)
		useCase := NewSpeechUseCase(upstream, maxTextChars, testLogger())

		result, err := useCase.Synthesize(ctx, &domain.SpeechInput{Text: "   "})
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		upstream.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	})

	t.Run("Failure_TextTooLong", func(t *testing.T) {
		upstream := new(mockUpstreamClient)
		useCase := NewSpeechUseCase(upstream, maxTextChars, testLogger())

		result, err := useCase.Synthesize(ctx, &domain.SpeechInput{
			Text: strings.Repeat("a", maxTextChars+1),
		})
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		upstream.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	})

	t.Run("Success_TextAtLimit", func(t *testing.T) {
		upstream := new(mockUpstreamClient)
		useCase := NewSpeechUseCase(upstream, maxTextChars, testLogger())

		upstream.On("Synthesize", ctx, mock.Anything).
			Return(&domain.SpeechResult{Audio: []byte("audio")}, nil)

		_, err := useCase.Synthesize(ctx, &domain.SpeechInput{
			Text: strings.Repeat("a", maxTextChars),
		})
		require.NoError(t, err)
	})

	t.Run("Failure_UpstreamError", func(t *testing.T) {
		upstream := new(mockUpstreamClient)
		useCase := NewSpeechUseCase(upstream, maxTextChars, testLogger())

		upstream.On("Synthesize", ctx, mock.Anything).
			Return(nil, domain.ErrUpstreamFailure)

		result, err := useCase.Synthesize(ctx, &domain.SpeechInput{Text: "Hello"})
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrBadGateway))
	})
}
