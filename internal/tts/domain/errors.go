package domain

import (
	apperrors "github.com/odiadev/keygate/internal/errors"
)

// Speech synthesis errors.
var (
	// ErrUpstreamFailure indicates the upstream TTS provider rejected or
	// failed the synthesis request.
	ErrUpstreamFailure = apperrors.Wrap(apperrors.ErrBadGateway, "upstream tts provider request failed")

	// ErrUpstreamNotConfigured indicates no upstream provider base URL is set.
	ErrUpstreamNotConfigured = apperrors.Wrap(apperrors.ErrUnavailable, "upstream tts provider is not configured")
)
