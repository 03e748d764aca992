package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/tts/domain"
	ttsService "github.com/odiadev/keygate/internal/tts/service"
	"github.com/odiadev/keygate/internal/validation"
)

// speechUseCase implements SpeechUseCase.
type speechUseCase struct {
	upstream     ttsService.UpstreamClient
	maxTextChars int
	logger       *slog.Logger
}

// NewSpeechUseCase creates a new SpeechUseCase. maxTextChars bounds the
// accepted synthesis text length in runes.
func NewSpeechUseCase(
	upstream ttsService.UpstreamClient,
	maxTextChars int,
	logger *slog.Logger,
) SpeechUseCase {
	return &speechUseCase{
		upstream:     upstream,
		maxTextChars: maxTextChars,
		logger:       logger,
	}
}

// Synthesize validates the request, applies defaults, and proxies it upstream.
func (s *speechUseCase) Synthesize(
	ctx context.Context,
	input *domain.SpeechInput,
) (*domain.SpeechResult, error) {
	if err := validation.NotBlank.Validate(input.Text); err != nil {
		return nil, validation.WrapValidationError(err)
	}
	if length := utf8.RuneCountInString(input.Text); length > s.maxTextChars {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("text length %d exceeds the maximum of %d characters", length, s.maxTextChars),
		)
	}

	input.ApplyDefaults()

	result, err := s.upstream.Synthesize(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("speech synthesized",
		slog.Int("text_chars", utf8.RuneCountInString(input.Text)),
		slog.String("voice", input.Voice),
		slog.String("format", input.Format),
		slog.Int("audio_bytes", len(result.Audio)),
	)

	return result, nil
}
