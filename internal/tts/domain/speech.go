// Package domain contains the core business entities for speech synthesis.
package domain

// Default synthesis parameters applied when a request omits them.
const (
	DefaultVoice  = "naija_female"
	DefaultFormat = "mp3_48k"
)

// AudioContentType is the content type served when the upstream omits one.
const AudioContentType = "audio/mpeg"

// SpeechInput carries the parameters of a synthesis request.
type SpeechInput struct {
	Text   string
	Voice  string
	Format string
}

// SpeechResult holds synthesized audio as returned by the upstream provider.
type SpeechResult struct {
	Audio       []byte
	ContentType string
}

// ApplyDefaults fills zero-valued synthesis parameters.
func (s *SpeechInput) ApplyDefaults() {
	if s.Voice == "" {
		s.Voice = DefaultVoice
	}
	if s.Format == "" {
		s.Format = DefaultFormat
	}
}
