package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/tts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPUpstreamClientSynthesize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsAudio", func(t *testing.T) {
		var gotRequest synthesizeRequest
		var gotAPIKey string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/tts", r.URL.Path)
			assert.Equal(t, domain.AudioContentType, r.Header.Get("Accept"))
			gotAPIKey = r.Header.Get(upstreamAuthHeader)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

			w.Header().Set("Content-Type", domain.AudioContentType)
			_, _ = w.Write([]byte("mp3-bytes"))
		}))
		defer server.Close()

		client := NewHTTPUpstreamClient(server.URL, "upstream-secret", 5*time.Second, testLogger())

		result, err := client.Synthesize(ctx, &domain.SpeechInput{
			Text:   "Hello",
			Voice:  domain.DefaultVoice,
			Format: domain.DefaultFormat,
		})
		require.NoError(t, err)

		assert.Equal(t, []byte("mp3-bytes"), result.Audio)
		assert.Equal(t, domain.AudioContentType, result.ContentType)
		assert.Equal(t, "upstream-secret", gotAPIKey)
		assert.Equal(t, "Hello", gotRequest.Text)
		assert.Equal(t, domain.DefaultVoice, gotRequest.Voice)
		assert.Equal(t, domain.DefaultFormat, gotRequest.Format)
	})

	t.Run("Success_DefaultContentType", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Content-Type"] = nil
			_, _ = w.Write([]byte("audio"))
		}))
		defer server.Close()

		client := NewHTTPUpstreamClient(server.URL, "", 5*time.Second, testLogger())

		result, err := client.Synthesize(ctx, &domain.SpeechInput{Text: "Hello"})
		require.NoError(t, err)
		assert.Equal(t, domain.AudioContentType, result.ContentType)
	})

	t.Run("Failure_UpstreamErrorStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "synthesis failed", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewHTTPUpstreamClient(server.URL, "", 5*time.Second, testLogger())

		result, err := client.Synthesize(ctx, &domain.SpeechInput{Text: "Hello"})
		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrBadGateway))
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("Failure_UpstreamUnreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewHTTPUpstreamClient(server.URL, "", time.Second, testLogger())

		result, err := client.Synthesize(ctx, &domain.SpeechInput{Text: "Hello"})
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrBadGateway))
	})

	t.Run("Failure_NotConfigured", func(t *testing.T) {
		client := NewHTTPUpstreamClient("", "", time.Second, testLogger())

		result, err := client.Synthesize(ctx, &domain.SpeechInput{Text: "Hello"})
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
	})
}
