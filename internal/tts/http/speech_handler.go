// Package http provides HTTP handlers and middleware for the speech synthesis gateway.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odiadev/keygate/internal/httputil"
	keysHTTP "github.com/odiadev/keygate/internal/keys/http"
	"github.com/odiadev/keygate/internal/tts/domain"
	"github.com/odiadev/keygate/internal/tts/http/dto"
	ttsUseCase "github.com/odiadev/keygate/internal/tts/usecase"
	customValidation "github.com/odiadev/keygate/internal/validation"
)

// SpeechHandler handles HTTP requests for speech synthesis.
type SpeechHandler struct {
	speechUseCase ttsUseCase.SpeechUseCase
	logger        *slog.Logger
}

// NewSpeechHandler creates a new speech handler with required dependencies.
func NewSpeechHandler(
	speechUseCase ttsUseCase.SpeechUseCase,
	logger *slog.Logger,
) *SpeechHandler {
	return &SpeechHandler{
		speechUseCase: speechUseCase,
		logger:        logger,
	}
}

// SynthesizeSpeechHandler proxies a synthesis request to the upstream provider.
// POST /v1/tts - Requires a verified API key with the tts:read scope.
// Responds with the raw audio bytes on success.
func (h *SpeechHandler) SynthesizeSpeechHandler(c *gin.Context) {
	var req dto.SynthesizeSpeechRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.speechUseCase.Synthesize(c.Request.Context(), &domain.SpeechInput{
		Text:   req.Text,
		Voice:  req.Voice,
		Format: req.Format,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if key, ok := keysHTTP.GetAPIKey(c.Request.Context()); ok {
		h.logger.Debug("speech synthesis served",
			slog.String("prefix", key.Prefix),
			slog.Int("audio_bytes", len(result.Audio)),
		)
	}

	c.Data(http.StatusOK, result.ContentType, result.Audio)
}
