// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/odiadev/keygate/internal/keys/domain"
)

// IssueAPIKeyResponse contains the result of issuing a new API key.
// SECURITY: The key is only returned once and must be saved securely.
type IssueAPIKeyResponse struct {
	APIKey string `json:"api_key"` //nolint:gosec // returned once on issuance
	Prefix string `json:"prefix"`
}

// APIKeyResponse represents an API key in list responses (excludes the hash).
type APIKeyResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Prefix      string     `json:"prefix"`
	Scopes      []string   `json:"scopes"`
	RatePerMin  int        `json:"rate_per_min"`
	DailyQuota  int        `json:"daily_quota"`
	DomainAllow []string   `json:"domain_allow"`
	ProjectID   *string    `json:"project_id,omitempty"`
	CreatedBy   string     `json:"created_by"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MapAPIKeyToResponse converts a domain API key to an API response.
func MapAPIKeyToResponse(key *domain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:          key.ID.String(),
		Name:        key.Name,
		Type:        string(key.Type),
		Prefix:      key.Prefix,
		Scopes:      key.Scopes,
		RatePerMin:  key.RatePerMin,
		DailyQuota:  key.DailyQuota,
		DomainAllow: key.DomainAllow,
		ProjectID:   key.ProjectID,
		CreatedBy:   key.CreatedBy,
		RevokedAt:   key.RevokedAt,
		LastUsedAt:  key.LastUsedAt,
		CreatedAt:   key.CreatedAt,
	}
}

// ListAPIKeysResponse represents a paginated list of API keys.
type ListAPIKeysResponse struct {
	Data []APIKeyResponse `json:"data"`
}

// MapAPIKeysToListResponse converts a slice of domain API keys to a list response.
func MapAPIKeysToListResponse(keys []*domain.APIKey) ListAPIKeysResponse {
	keyResponses := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		keyResponses = append(keyResponses, MapAPIKeyToResponse(key))
	}
	return ListAPIKeysResponse{
		Data: keyResponses,
	}
}

// RevokeAPIKeyResponse confirms a revocation.
type RevokeAPIKeyResponse struct {
	Revoked bool `json:"revoked"`
}
