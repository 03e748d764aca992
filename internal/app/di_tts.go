package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/odiadev/keygate/internal/http"
	"github.com/odiadev/keygate/internal/keys/domain"
	keysHTTP "github.com/odiadev/keygate/internal/keys/http"
	ttsHTTP "github.com/odiadev/keygate/internal/tts/http"
	ttsService "github.com/odiadev/keygate/internal/tts/service"
	ttsUseCase "github.com/odiadev/keygate/internal/tts/usecase"
)

// UpstreamClient returns the upstream TTS provider client.
func (c *Container) UpstreamClient() ttsService.UpstreamClient {
	c.upstreamClientInit.Do(func() {
		c.upstreamClient = ttsService.NewHTTPUpstreamClient(
			c.config.UpstreamBaseURL,
			c.config.UpstreamAPIKey,
			c.config.UpstreamTimeout,
			c.Logger(),
		)
	})
	return c.upstreamClient
}

// SpeechUseCase returns the speech synthesis use case.
func (c *Container) SpeechUseCase() (ttsUseCase.SpeechUseCase, error) {
	c.speechUseCaseInit.Do(func() {
		baseUseCase := ttsUseCase.NewSpeechUseCase(
			c.UpstreamClient(),
			c.config.TTSMaxTextChars,
			c.Logger(),
		)

		// Wrap with metrics if enabled
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["speechUseCase"] = fmt.Errorf("failed to get business metrics for speech use case: %w", err)
				return
			}
			c.speechUseCase = ttsUseCase.NewSpeechUseCaseWithMetrics(baseUseCase, businessMetrics)
			return
		}

		c.speechUseCase = baseUseCase
	})
	if storedErr, exists := c.initErrors["speechUseCase"]; exists {
		return nil, storedErr
	}
	return c.speechUseCase, nil
}

// SpeechHandler returns the HTTP handler for speech synthesis.
func (c *Container) SpeechHandler() (*ttsHTTP.SpeechHandler, error) {
	c.speechHandlerInit.Do(func() {
		useCase, err := c.SpeechUseCase()
		if err != nil {
			c.initErrors["speechHandler"] = fmt.Errorf("failed to get speech use case for speech handler: %w", err)
			return
		}
		c.speechHandler = ttsHTTP.NewSpeechHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["speechHandler"]; exists {
		return nil, storedErr
	}
	return c.speechHandler, nil
}

// ttsRouteRegistrar mounts the speech synthesis route behind API key
// verification, scope enforcement, and the per-key rate limiter.
func (c *Container) ttsRouteRegistrar() (http.RouteRegistrar, error) {
	speechHandler, err := c.SpeechHandler()
	if err != nil {
		return nil, err
	}

	apiKeyUseCase, err := c.APIKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key use case for tts routes: %w", err)
	}

	logger := c.Logger()
	rateLimitEnabled := c.config.RateLimitEnabled

	return func(router *gin.Engine) {
		handlers := []gin.HandlerFunc{
			keysHTTP.APIKeyMiddleware(apiKeyUseCase, logger),
			keysHTTP.RequireScopeMiddleware(domain.DefaultScope, logger),
		}
		if rateLimitEnabled {
			handlers = append(handlers, ttsHTTP.RateLimitMiddleware(logger))
		}
		handlers = append(handlers, speechHandler.SynthesizeSpeechHandler)

		router.POST("/v1/tts", handlers...)
	}, nil
}
