package usecase

import (
	"context"
	"time"

	"github.com/odiadev/keygate/internal/keys/domain"
	"github.com/odiadev/keygate/internal/metrics"
)

// apiKeyUseCaseWithMetrics decorates APIKeyUseCase with metrics instrumentation.
type apiKeyUseCaseWithMetrics struct {
	next    APIKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewAPIKeyUseCaseWithMetrics wraps an APIKeyUseCase with metrics recording.
func NewAPIKeyUseCaseWithMetrics(useCase APIKeyUseCase, m metrics.BusinessMetrics) APIKeyUseCase {
	return &apiKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for key issuance operations.
func (a *apiKeyUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *domain.IssueKeyInput,
) (*domain.IssueKeyOutput, error) {
	start := time.Now()
	output, err := a.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "keys", "key_issue", status)
	a.metrics.RecordDuration(ctx, "keys", "key_issue", time.Since(start), status)

	return output, err
}

// Verify records metrics for key verification operations. Denied
// verifications are labeled with their deny reason rather than "error".
func (a *apiKeyUseCaseWithMetrics) Verify(
	ctx context.Context,
	presentedKey, origin string,
) (domain.Verification, error) {
	start := time.Now()
	verification, err := a.next.Verify(ctx, presentedKey, origin)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !verification.OK:
		status = string(verification.Reason)
	}

	a.metrics.RecordOperation(ctx, "keys", "key_verify", status)
	a.metrics.RecordDuration(ctx, "keys", "key_verify", time.Since(start), status)

	return verification, err
}

// Revoke records metrics for key revocation operations.
func (a *apiKeyUseCaseWithMetrics) Revoke(ctx context.Context, prefix string) error {
	start := time.Now()
	err := a.next.Revoke(ctx, prefix)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "keys", "key_revoke", status)
	a.metrics.RecordDuration(ctx, "keys", "key_revoke", time.Since(start), status)

	return err
}

// List records metrics for key list operations.
func (a *apiKeyUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.APIKey, error) {
	start := time.Now()
	keys, err := a.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "keys", "key_list", status)
	a.metrics.RecordDuration(ctx, "keys", "key_list", time.Since(start), status)

	return keys, err
}
