package usecase

import (
	"context"
	"time"

	"github.com/odiadev/keygate/internal/metrics"
	"github.com/odiadev/keygate/internal/tts/domain"
)

// speechUseCaseWithMetrics decorates SpeechUseCase with metrics instrumentation.
type speechUseCaseWithMetrics struct {
	next    SpeechUseCase
	metrics metrics.BusinessMetrics
}

// NewSpeechUseCaseWithMetrics wraps a SpeechUseCase with metrics recording.
func NewSpeechUseCaseWithMetrics(useCase SpeechUseCase, m metrics.BusinessMetrics) SpeechUseCase {
	return &speechUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Synthesize records metrics for synthesis operations.
func (s *speechUseCaseWithMetrics) Synthesize(
	ctx context.Context,
	input *domain.SpeechInput,
) (*domain.SpeechResult, error) {
	start := time.Now()
	result, err := s.next.Synthesize(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "tts", "speech_synthesize", status)
	s.metrics.RecordDuration(ctx, "tts", "speech_synthesize", time.Since(start), status)

	return result, err
}
