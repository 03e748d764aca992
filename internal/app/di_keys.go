package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/odiadev/keygate/internal/http"
	keysHTTP "github.com/odiadev/keygate/internal/keys/http"
	keysRepository "github.com/odiadev/keygate/internal/keys/repository"
	keysService "github.com/odiadev/keygate/internal/keys/service"
	keysUseCase "github.com/odiadev/keygate/internal/keys/usecase"
)

// KeyService returns the key minting and digesting service.
// The pepper is resolved once at initialization, decrypting via KMS when configured.
func (c *Container) KeyService() (keysService.KeyService, error) {
	c.keyServiceInit.Do(func() {
		pepperService := keysService.NewPepperService(
			c.config.KeyPepper,
			c.config.KeyPepperCiphertext,
			c.config.KMSKeyURI,
		)

		pepper, err := pepperService.Resolve(context.Background())
		if err != nil {
			c.initErrors["keyService"] = fmt.Errorf("failed to resolve key pepper: %w", err)
			return
		}

		c.keyService = keysService.NewKeyService(pepper)
	})
	if storedErr, exists := c.initErrors["keyService"]; exists {
		return nil, storedErr
	}
	return c.keyService, nil
}

// APIKeyRepository returns the API key repository based on database driver.
func (c *Container) APIKeyRepository() (keysUseCase.APIKeyRepository, error) {
	c.apiKeyRepoInit.Do(func() {
		repo, err := c.initAPIKeyRepository()
		if err != nil {
			c.initErrors["apiKeyRepo"] = err
			return
		}
		c.apiKeyRepo = repo
	})
	if storedErr, exists := c.initErrors["apiKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.apiKeyRepo, nil
}

// APIKeyUseCase returns the API key use case.
func (c *Container) APIKeyUseCase() (keysUseCase.APIKeyUseCase, error) {
	c.apiKeyUseCaseInit.Do(func() {
		useCase, err := c.initAPIKeyUseCase()
		if err != nil {
			c.initErrors["apiKeyUseCase"] = err
			return
		}
		c.apiKeyUseCase = useCase
	})
	if storedErr, exists := c.initErrors["apiKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.apiKeyUseCase, nil
}

// APIKeyHandler returns the HTTP handler for API key administration.
func (c *Container) APIKeyHandler() (*keysHTTP.APIKeyHandler, error) {
	c.apiKeyHandlerInit.Do(func() {
		useCase, err := c.APIKeyUseCase()
		if err != nil {
			c.initErrors["apiKeyHandler"] = fmt.Errorf("failed to get api key use case for api key handler: %w", err)
			return
		}
		c.apiKeyHandler = keysHTTP.NewAPIKeyHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["apiKeyHandler"]; exists {
		return nil, storedErr
	}
	return c.apiKeyHandler, nil
}

// initAPIKeyRepository creates the API key repository based on the database driver.
func (c *Container) initAPIKeyRepository() (keysUseCase.APIKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return keysRepository.NewPostgreSQLAPIKeyRepository(db), nil
	case "mysql":
		return keysRepository.NewMySQLAPIKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAPIKeyUseCase creates the API key use case with all its dependencies.
func (c *Container) initAPIKeyUseCase() (keysUseCase.APIKeyUseCase, error) {
	repo, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for api key use case: %w", err)
	}

	keyService, err := c.KeyService()
	if err != nil {
		return nil, fmt.Errorf("failed to get key service for api key use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction manager for api key use case: %w", err)
	}

	baseUseCase := keysUseCase.NewAPIKeyUseCase(txManager, repo, keyService, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for api key use case: %w", err)
		}
		return keysUseCase.NewAPIKeyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// adminRouteRegistrar mounts the key administration routes behind admin auth.
func (c *Container) adminRouteRegistrar() (http.RouteRegistrar, error) {
	handler, err := c.APIKeyHandler()
	if err != nil {
		return nil, err
	}

	logger := c.Logger()
	adminToken := c.config.AdminToken

	return func(router *gin.Engine) {
		admin := router.Group("/v1/admin")
		admin.Use(keysHTTP.AdminAuthMiddleware(adminToken, logger))
		{
			admin.POST("/keys", handler.IssueAPIKeyHandler)
			admin.GET("/keys", handler.ListAPIKeysHandler)
			admin.POST("/keys/revoke", handler.RevokeAPIKeyHandler)
		}
	}, nil
}
