// Package dto contains data transfer objects for speech synthesis HTTP requests.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/odiadev/keygate/internal/validation"
)

// SynthesizeSpeechRequest represents a speech synthesis request.
// Voice and format fall back to server defaults when omitted; the maximum
// text length is enforced by the use case from configuration.
type SynthesizeSpeechRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// Validate checks if the synthesis request is valid.
func (r *SynthesizeSpeechRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Voice, customValidation.NoWhitespace),
		validation.Field(&r.Format, customValidation.NoWhitespace),
	)
}
