package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/odiadev/keygate/internal/database"
	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/keys/domain"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQLAPIKeyRepository implements APIKey persistence for MySQL.
// Uses BINARY(16) for UUID storage and JSON columns for scopes and the
// domain allow-list, with transaction support via database.GetTx().
type MySQLAPIKeyRepository struct {
	db *sql.DB
}

// NewMySQLAPIKeyRepository creates a new MySQL APIKey repository.
func NewMySQLAPIKeyRepository(db *sql.DB) *MySQLAPIKeyRepository {
	return &MySQLAPIKeyRepository{db: db}
}

// Create inserts a new APIKey into the MySQL database. Returns
// domain.ErrDuplicatePrefix when the prefix collides with an existing record
// so that issuance can retry with a fresh prefix.
func (m *MySQLAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	querier := database.GetTx(ctx, m.db)

	id, err := key.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api key id")
	}

	scopesJSON, err := json.Marshal(key.Scopes)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api key scopes")
	}

	domainsJSON, err := json.Marshal(key.DomainAllow)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api key domain allow-list")
	}

	query := `INSERT INTO api_keys (id, name, type, prefix, hash, scopes, rate_per_min, daily_quota,
				  domain_allow, project_id, created_by, revoked_at, last_used_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		key.Name,
		key.Type,
		key.Prefix,
		key.Hash,
		scopesJSON,
		key.RatePerMin,
		key.DailyQuota,
		domainsJSON,
		key.ProjectID,
		key.CreatedBy,
		key.RevokedAt,
		key.LastUsedAt,
		key.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.ErrDuplicatePrefix
		}
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

// GetByPrefix retrieves an APIKey by its lookup prefix. Returns
// domain.ErrAPIKeyNotFound if no record exists.
func (m *MySQLAPIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*domain.APIKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, type, prefix, hash, scopes, rate_per_min, daily_quota,
				  domain_allow, project_id, created_by, revoked_at, last_used_at, created_at
			  FROM api_keys WHERE prefix = ?`

	key, err := scanMySQLAPIKey(querier.QueryRowContext(ctx, query, prefix))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key")
	}

	return key, nil
}

// Revoke marks the key with the given prefix as revoked. Idempotent: an
// already revoked key keeps its original revocation time, and an unknown
// prefix is a no-op rather than an error.
func (m *MySQLAPIKeyRepository) Revoke(ctx context.Context, prefix string, revokedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE api_keys SET revoked_at = COALESCE(revoked_at, ?) WHERE prefix = ?`

	if _, err := querier.ExecContext(ctx, query, revokedAt, prefix); err != nil {
		return apperrors.Wrap(err, "failed to revoke api key")
	}
	return nil
}

// List retrieves API keys ordered by creation time, newest first.
func (m *MySQLAPIKeyRepository) List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, type, prefix, hash, scopes, rate_per_min, daily_quota,
				  domain_allow, project_id, created_by, revoked_at, last_used_at, created_at
			  FROM api_keys ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		key, err := scanMySQLAPIKey(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}

	return keys, nil
}

// TouchLastUsed updates the key's last_used_at timestamp. Callers treat this
// as best-effort bookkeeping and ignore failures.
func (m *MySQLAPIKeyRepository) TouchLastUsed(ctx context.Context, prefix string, usedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE api_keys SET last_used_at = ? WHERE prefix = ?`

	if _, err := querier.ExecContext(ctx, query, usedAt, prefix); err != nil {
		return apperrors.Wrap(err, "failed to touch api key last_used_at")
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLAPIKey scans a MySQL row into a domain APIKey, decoding the
// BINARY(16) id and JSON-encoded list columns.
func scanMySQLAPIKey(row rowScanner) (*domain.APIKey, error) {
	var key domain.APIKey
	var id []byte
	var scopesJSON, domainsJSON []byte

	err := row.Scan(
		&id,
		&key.Name,
		&key.Type,
		&key.Prefix,
		&key.Hash,
		&scopesJSON,
		&key.RatePerMin,
		&key.DailyQuota,
		&domainsJSON,
		&key.ProjectID,
		&key.CreatedBy,
		&key.RevokedAt,
		&key.LastUsedAt,
		&key.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := key.ID.UnmarshalBinary(id); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scopesJSON, &key.Scopes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(domainsJSON, &key.DomainAllow); err != nil {
		return nil, err
	}

	return &key, nil
}
