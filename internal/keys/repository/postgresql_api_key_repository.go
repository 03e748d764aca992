// Package repository provides API key persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/odiadev/keygate/internal/database"
	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/keys/domain"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// PostgreSQLAPIKeyRepository implements APIKey persistence for PostgreSQL.
// Uses native UUID and TEXT[] types with transaction support via database.GetTx().
type PostgreSQLAPIKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLAPIKeyRepository creates a new PostgreSQL APIKey repository.
func NewPostgreSQLAPIKeyRepository(db *sql.DB) *PostgreSQLAPIKeyRepository {
	return &PostgreSQLAPIKeyRepository{db: db}
}

// Create inserts a new APIKey into the PostgreSQL database. Returns
// domain.ErrDuplicatePrefix when the prefix collides with an existing record
// so that issuance can retry with a fresh prefix.
func (p *PostgreSQLAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO api_keys (id, name, type, prefix, hash, scopes, rate_per_min, daily_quota,
				  domain_allow, project_id, created_by, revoked_at, last_used_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := querier.ExecContext(
		ctx,
		query,
		key.ID,
		key.Name,
		key.Type,
		key.Prefix,
		key.Hash,
		pq.Array(key.Scopes),
		key.RatePerMin,
		key.DailyQuota,
		pq.Array(key.DomainAllow),
		key.ProjectID,
		key.CreatedBy,
		key.RevokedAt,
		key.LastUsedAt,
		key.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrDuplicatePrefix
		}
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

// GetByPrefix retrieves an APIKey by its lookup prefix. Returns
// domain.ErrAPIKeyNotFound if no record exists.
func (p *PostgreSQLAPIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*domain.APIKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, type, prefix, hash, scopes, rate_per_min, daily_quota,
				  domain_allow, project_id, created_by, revoked_at, last_used_at, created_at
			  FROM api_keys WHERE prefix = $1`

	var key domain.APIKey

	err := querier.QueryRowContext(ctx, query, prefix).Scan(
		&key.ID,
		&key.Name,
		&key.Type,
		&key.Prefix,
		&key.Hash,
		pq.Array(&key.Scopes),
		&key.RatePerMin,
		&key.DailyQuota,
		pq.Array(&key.DomainAllow),
		&key.ProjectID,
		&key.CreatedBy,
		&key.RevokedAt,
		&key.LastUsedAt,
		&key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key")
	}

	return &key, nil
}

// Revoke marks the key with the given prefix as revoked. Idempotent: an
// already revoked key keeps its original revocation time, and an unknown
// prefix is a no-op rather than an error.
func (p *PostgreSQLAPIKeyRepository) Revoke(ctx context.Context, prefix string, revokedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_keys SET revoked_at = COALESCE(revoked_at, $2) WHERE prefix = $1`

	if _, err := querier.ExecContext(ctx, query, prefix, revokedAt); err != nil {
		return apperrors.Wrap(err, "failed to revoke api key")
	}
	return nil
}

// List retrieves API keys ordered by creation time, newest first.
func (p *PostgreSQLAPIKeyRepository) List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, type, prefix, hash, scopes, rate_per_min, daily_quota,
				  domain_allow, project_id, created_by, revoked_at, last_used_at, created_at
			  FROM api_keys ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		var key domain.APIKey
		err := rows.Scan(
			&key.ID,
			&key.Name,
			&key.Type,
			&key.Prefix,
			&key.Hash,
			pq.Array(&key.Scopes),
			&key.RatePerMin,
			&key.DailyQuota,
			pq.Array(&key.DomainAllow),
			&key.ProjectID,
			&key.CreatedBy,
			&key.RevokedAt,
			&key.LastUsedAt,
			&key.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}

	return keys, nil
}

// TouchLastUsed updates the key's last_used_at timestamp. Callers treat this
// as best-effort bookkeeping and ignore failures.
func (p *PostgreSQLAPIKeyRepository) TouchLastUsed(ctx context.Context, prefix string, usedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_keys SET last_used_at = $2 WHERE prefix = $1`

	if _, err := querier.ExecContext(ctx, query, prefix, usedAt); err != nil {
		return apperrors.Wrap(err, "failed to touch api key last_used_at")
	}
	return nil
}
