package domain

// IssueKeyInput carries the parameters for issuing a new API key.
// Zero values fall back to issuance defaults: type "pk", scope "tts:read",
// rate DefaultRatePerMin, quota DefaultDailyQuota.
type IssueKeyInput struct {
	Name        string
	Type        KeyType
	Scopes      []string
	RatePerMin  int
	DailyQuota  int
	DomainAllow []string
	ProjectID   *string
	CreatedBy   string
}

// IssueKeyOutput is returned once at issuance. PlainKey is the only copy of
// the complete token; it is never persisted and cannot be retrieved again.
type IssueKeyOutput struct {
	PlainKey string
	Prefix   string
}
