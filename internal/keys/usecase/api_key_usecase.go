package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/odiadev/keygate/internal/database"
	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/keys/domain"
	keyService "github.com/odiadev/keygate/internal/keys/service"
	"github.com/odiadev/keygate/internal/validation"
)

// mintAttempts bounds prefix collision retries during issuance. With 48 bits
// of prefix entropy a collision is already vanishingly rare.
const mintAttempts = 3

// apiKeyUseCase implements APIKeyUseCase for managing API keys.
type apiKeyUseCase struct {
	txManager  database.TxManager
	repo       APIKeyRepository
	keyService keyService.KeyService
	logger     *slog.Logger

	// lookupGroup collapses concurrent verifications of the same prefix
	// into a single repository read.
	lookupGroup singleflight.Group
}

// NewAPIKeyUseCase creates a new APIKeyUseCase with the provided dependencies.
func NewAPIKeyUseCase(
	txManager database.TxManager,
	repo APIKeyRepository,
	svc keyService.KeyService,
	logger *slog.Logger,
) APIKeyUseCase {
	return &apiKeyUseCase{
		txManager:  txManager,
		repo:       repo,
		keyService: svc,
		logger:     logger,
	}
}

// Issue mints and persists a new API key.
//
// This method:
// 1. Applies issuance defaults (type "pk", scope "tts:read", rate, quota)
// 2. Validates the resulting input
// 3. Mints a token and persists its record, retrying on prefix collision
// 4. Returns the complete token to the caller (only shown once)
//
// Security Notes:
//   - Only the peppered digest of the token is stored; the token itself
//     appears exclusively in the returned output and is never logged
func (a *apiKeyUseCase) Issue(
	ctx context.Context,
	input *domain.IssueKeyInput,
) (*domain.IssueKeyOutput, error) {
	applyIssueDefaults(input)

	if err := validateIssueInput(input); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < mintAttempts; attempt++ {
		minted, err := a.keyService.Mint(string(input.Type))
		if err != nil {
			return nil, err
		}

		key := &domain.APIKey{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        input.Name,
			Type:        input.Type,
			Prefix:      minted.Prefix,
			Hash:        minted.Hash,
			Scopes:      input.Scopes,
			RatePerMin:  input.RatePerMin,
			DailyQuota:  input.DailyQuota,
			DomainAllow: input.DomainAllow,
			ProjectID:   input.ProjectID,
			CreatedBy:   input.CreatedBy,
			CreatedAt:   time.Now().UTC(),
		}

		// Persist within a transaction
		err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
			return a.repo.Create(ctx, key)
		})
		if err == nil {
			return &domain.IssueKeyOutput{
				PlainKey: minted.Full,
				Prefix:   minted.Prefix,
			}, nil
		}

		// Retry with a fresh prefix on collision, fail fast otherwise
		if !errors.Is(err, domain.ErrDuplicatePrefix) {
			return nil, err
		}

		a.logger.Warn("api key prefix collision, retrying",
			slog.Int("attempt", attempt+1),
		)
		lastErr = err
	}

	return nil, apperrors.Wrap(lastErr, fmt.Sprintf("failed to issue api key after %d attempts", mintAttempts))
}

// Verify checks a presented token against the store.
//
// Checks run in a fixed order and the first failure wins:
// format, existence, revocation, origin, digest. The digest comparison is
// constant-time. On success, last_used_at is updated best-effort.
func (a *apiKeyUseCase) Verify(
	ctx context.Context,
	presentedKey, origin string,
) (domain.Verification, error) {
	prefix, ok := a.keyService.ParsePrefix(presentedKey)
	if !ok {
		return domain.Denied(domain.DenyBadFormat), nil
	}

	key, err := a.lookupByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, domain.ErrAPIKeyNotFound) {
			return domain.Denied(domain.DenyNotFound), nil
		}
		return domain.Verification{}, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}

	if key.IsRevoked() {
		return domain.Denied(domain.DenyRevoked), nil
	}

	// The origin check only applies to keys that restrict origins. Keys with
	// an empty allow-list accept any caller, including ones whose Origin
	// header does not parse (browsers send the literal "null" for opaque
	// origins).
	if len(key.DomainAllow) > 0 {
		host, parsed := originHost(origin)
		if !parsed || !key.AllowsOrigin(host) {
			return domain.Denied(domain.DenyOriginDenied), nil
		}
	}

	computed := a.keyService.HashKey(presentedKey)
	if !a.keyService.CompareDigest(computed, key.Hash) {
		return domain.Denied(domain.DenyBadSig), nil
	}

	// Best-effort usage bookkeeping; verification already succeeded
	if err := a.repo.TouchLastUsed(ctx, prefix, time.Now().UTC()); err != nil {
		a.logger.Warn("failed to update api key last_used_at",
			slog.String("prefix", prefix),
			slog.Any("error", err),
		)
	}

	return domain.Verified(key), nil
}

// Revoke permanently deactivates the key with the given prefix. Unknown or
// already revoked prefixes are a no-op, not an error.
func (a *apiKeyUseCase) Revoke(ctx context.Context, prefix string) error {
	if err := validation.NotBlank.Validate(prefix); err != nil {
		return validation.WrapValidationError(err)
	}
	return a.repo.Revoke(ctx, prefix, time.Now().UTC())
}

// List retrieves keys ordered by creation time, newest first.
func (a *apiKeyUseCase) List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error) {
	return a.repo.List(ctx, offset, limit)
}

// lookupByPrefix reads a key record, collapsing concurrent lookups of the
// same prefix into one repository call.
func (a *apiKeyUseCase) lookupByPrefix(ctx context.Context, prefix string) (*domain.APIKey, error) {
	result, err, _ := a.lookupGroup.Do(prefix, func() (any, error) {
		return a.repo.GetByPrefix(ctx, prefix)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.APIKey), nil
}

// originHost extracts the hostname from an Origin header value. An empty
// origin parses to an empty host (server-to-server callers); a non-empty
// value that cannot be parsed reports false.
func originHost(origin string) (string, bool) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return "", true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return "", false
	}

	return strings.ToLower(u.Hostname()), true
}

// applyIssueDefaults fills zero-valued issuance parameters and normalizes
// allowed domains to lowercase so stored records match what AllowsOrigin
// compares against.
func applyIssueDefaults(input *domain.IssueKeyInput) {
	if input.Type == "" {
		input.Type = domain.KeyTypePublic
	}
	if len(input.Scopes) == 0 {
		input.Scopes = []string{domain.DefaultScope}
	}
	if input.RatePerMin == 0 {
		input.RatePerMin = domain.DefaultRatePerMin
	}
	if input.DailyQuota == 0 {
		input.DailyQuota = domain.DefaultDailyQuota
	}
	if input.DomainAllow == nil {
		input.DomainAllow = []string{}
	}
	for i, d := range input.DomainAllow {
		input.DomainAllow[i] = strings.ToLower(strings.TrimSpace(d))
	}
}

// validateIssueInput checks issuance parameters after defaults are applied.
func validateIssueInput(input *domain.IssueKeyInput) error {
	if err := validation.NotBlank.Validate(input.Name); err != nil {
		return validation.WrapValidationError(err)
	}
	if !domain.ValidKeyType(input.Type) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("invalid key type %q", input.Type))
	}
	if input.RatePerMin < 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "rate per minute must not be negative")
	}
	if input.DailyQuota < 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "daily quota must not be negative")
	}
	for _, s := range input.Scopes {
		if err := validation.NotBlank.Validate(s); err != nil {
			return validation.WrapValidationError(err)
		}
	}
	for _, d := range input.DomainAllow {
		if err := validation.Hostname.Validate(d); err != nil {
			return validation.WrapValidationError(err)
		}
	}
	return nil
}
