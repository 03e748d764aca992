// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/odiadev/keygate/internal/keys/domain"
	customValidation "github.com/odiadev/keygate/internal/validation"
)

// IssueAPIKeyRequest contains the parameters for issuing a new API key.
// Omitted fields fall back to issuance defaults.
type IssueAPIKeyRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Scopes      []string `json:"scopes"`
	RatePerMin  int      `json:"rate_per_min"`
	DailyQuota  int      `json:"daily_quota"`
	DomainAllow []string `json:"domain_allow"`
	ProjectID   *string  `json:"project_id"`
}

// Validate checks if the issue request is valid.
func (r *IssueAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Type,
			validation.In("", string(domain.KeyTypePublic), string(domain.KeyTypeSecret)),
		),
		validation.Field(&r.Scopes,
			validation.Each(customValidation.NotBlank),
		),
		validation.Field(&r.RatePerMin,
			validation.Min(0),
		),
		validation.Field(&r.DailyQuota,
			validation.Min(0),
		),
		validation.Field(&r.DomainAllow,
			validation.Each(customValidation.Hostname),
		),
	)
}

// RevokeAPIKeyRequest contains the parameters for revoking an API key.
type RevokeAPIKeyRequest struct {
	Prefix string `json:"prefix"`
}

// Validate checks if the revoke request is valid.
func (r *RevokeAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Prefix,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(domain.PrefixLength, domain.PrefixLength),
		),
	)
}
