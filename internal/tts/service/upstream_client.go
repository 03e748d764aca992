package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/tts/domain"
)

// upstreamAuthHeader authenticates this gateway against the upstream provider.
const upstreamAuthHeader = "X-API-Key"

// maxErrorBodyBytes bounds how much of an upstream error body is read for logging.
const maxErrorBodyBytes = 512

// synthesizeRequest is the JSON payload sent to the upstream provider.
type synthesizeRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// httpUpstreamClient implements UpstreamClient over HTTP.
type httpUpstreamClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPUpstreamClient creates an UpstreamClient talking to the provider at baseURL.
// The apiKey is sent on every request; timeout bounds a single synthesis call.
func NewHTTPUpstreamClient(
	baseURL, apiKey string,
	timeout time.Duration,
	logger *slog.Logger,
) UpstreamClient {
	return &httpUpstreamClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Synthesize sends the synthesis request upstream and returns the audio bytes.
// Any upstream failure maps to a bad gateway error; the upstream response body
// is logged but never forwarded to callers.
func (c *httpUpstreamClient) Synthesize(
	ctx context.Context,
	input *domain.SpeechInput,
) (*domain.SpeechResult, error) {
	if c.baseURL == "" {
		return nil, domain.ErrUpstreamNotConfigured
	}

	payload, err := json.Marshal(synthesizeRequest{
		Text:   input.Text,
		Voice:  input.Voice,
		Format: input.Format,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode synthesis request")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/tts",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", domain.AudioContentType)
	if c.apiKey != "" {
		req.Header.Set(upstreamAuthHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("upstream tts request failed", slog.Any("error", err))
		return nil, domain.ErrUpstreamFailure
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.Error("upstream tts returned error status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("detail", string(detail)),
		)
		return nil, apperrors.Wrap(
			domain.ErrUpstreamFailure,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode),
		)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read upstream tts response", slog.Any("error", err))
		return nil, domain.ErrUpstreamFailure
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = domain.AudioContentType
	}

	return &domain.SpeechResult{
		Audio:       audio,
		ContentType: contentType,
	}, nil
}
