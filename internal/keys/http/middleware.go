package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/httputil"
	keyUseCase "github.com/odiadev/keygate/internal/keys/usecase"
)

// apiKeyHeader carries the API key on resource requests.
const apiKeyHeader = "X-Odia-Key"

// AdminAuthMiddleware protects admin endpoints with a static bearer token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Compares it against the configured admin token in constant time
// 3. Rejects with 401 Unauthorized on any mismatch
//
// A server with no admin token configured rejects every request rather than
// running the admin surface open.
func AdminAuthMiddleware(adminToken string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			logger.Warn("admin request rejected: no admin token configured")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("admin authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("admin authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		presented := authHeader[len(bearerPrefix):]
		if subtle.ConstantTimeCompare([]byte(presented), []byte(adminToken)) != 1 {
			logger.Debug("admin authentication failed: token mismatch")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIKeyMiddleware verifies the API key presented on resource requests.
//
// The middleware:
// 1. Reads the key from the X-Odia-Key header and the Origin header
// 2. Verifies both through APIKeyUseCase.Verify
// 3. On denial responds 401 with {"error": "invalid_key", "reason": <reason>}
// 4. On success stores the verified key in the request context for handlers
//
// Backend failures during verification respond 503 rather than 401 so
// callers can distinguish a rejected key from a degraded service.
func APIKeyMiddleware(
	apiKeyUseCase keyUseCase.APIKeyUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(apiKeyHeader)
		origin := c.GetHeader("Origin")

		verification, err := apiKeyUseCase.Verify(c.Request.Context(), presented, origin)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		if !verification.OK {
			logger.Debug("api key verification denied",
				slog.String("reason", string(verification.Reason)),
			)
			c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:  "invalid_key",
				Reason: string(verification.Reason),
			})
			c.Abort()
			return
		}

		ctx := WithAPIKey(c.Request.Context(), verification.Key)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireScopeMiddleware rejects verified keys that lack the given scope.
// Must run after APIKeyMiddleware.
func RequireScopeMiddleware(scope string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := GetAPIKey(c.Request.Context())
		if !ok || key == nil {
			logger.Debug("scope check failed: no verified api key in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !key.HasScope(scope) {
			logger.Debug("scope check failed: missing scope",
				slog.String("prefix", key.Prefix),
				slog.String("scope", scope),
			)
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
