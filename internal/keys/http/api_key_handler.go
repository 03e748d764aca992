package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odiadev/keygate/internal/httputil"
	"github.com/odiadev/keygate/internal/keys/domain"
	"github.com/odiadev/keygate/internal/keys/http/dto"
	keyUseCase "github.com/odiadev/keygate/internal/keys/usecase"
	customValidation "github.com/odiadev/keygate/internal/validation"
)

// APIKeyHandler handles HTTP requests for API key administration.
// It coordinates issuance, listing, and revocation with the APIKeyUseCase.
type APIKeyHandler struct {
	apiKeyUseCase keyUseCase.APIKeyUseCase
	logger        *slog.Logger
}

// NewAPIKeyHandler creates a new API key handler with required dependencies.
func NewAPIKeyHandler(
	apiKeyUseCase keyUseCase.APIKeyUseCase,
	logger *slog.Logger,
) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyUseCase: apiKeyUseCase,
		logger:        logger,
	}
}

// IssueAPIKeyHandler issues a new API key.
// POST /v1/admin/keys - Requires admin authentication.
// Returns 201 Created with the complete key (shown exactly once) and its prefix.
func (h *APIKeyHandler) IssueAPIKeyHandler(c *gin.Context) {
	var req dto.IssueAPIKeyRequest

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

	input := &domain.IssueKeyInput{
		Name:        req.Name,
		Type:        domain.KeyType(req.Type),
		Scopes:      req.Scopes,
		RatePerMin:  req.RatePerMin,
		DailyQuota:  req.DailyQuota,
		DomainAllow: req.DomainAllow,
		ProjectID:   req.ProjectID,
		CreatedBy:   "admin",
	}

	output, err := h.apiKeyUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("api key issued",
		slog.String("prefix", output.Prefix),
		slog.String("name", req.Name),
	)

	response := dto.IssueAPIKeyResponse{
		APIKey: output.PlainKey,
		Prefix: output.Prefix,
	}

	c.JSON(http.StatusCreated, response)
}

// ListAPIKeysHandler lists issued API keys, newest first, without hashes.
// GET /v1/admin/keys - Requires admin authentication.
// Supports offset/limit pagination query parameters.
func (h *APIKeyHandler) ListAPIKeysHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	keys, err := h.apiKeyUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAPIKeysToListResponse(keys))
}

// RevokeAPIKeyHandler revokes the key with the given prefix.
// POST /v1/admin/keys/revoke - Requires admin authentication.
// Revoking an already revoked key succeeds.
func (h *APIKeyHandler) RevokeAPIKeyHandler(c *gin.Context) {
	var req dto.RevokeAPIKeyRequest

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

	if err := h.apiKeyUseCase.Revoke(c.Request.Context(), req.Prefix); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("api key revoked", slog.String("prefix", req.Prefix))

	c.JSON(http.StatusOK, dto.RevokeAPIKeyResponse{Revoked: true})
}
