package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/odiadev/keygate/internal/keys/domain"
	keysUseCase "github.com/odiadev/keygate/internal/keys/usecase"
)

// RunListKeys lists issued API keys, newest first. Key hashes are never
// included in the output. Outputs in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunListKeys(
	ctx context.Context,
	apiKeyUseCase keysUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	offset int,
	limit int,
	format string,
) error {
	keys, err := apiKeyUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list api keys: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputListJSON(keys, writer)
	} else {
		outputListText(keys, writer)
	}

	logger.Info("api keys listed", slog.Int("count", len(keys)))

	return nil
}

// listedKey is the JSON projection of an API key for CLI output.
type listedKey struct {
	Prefix      string     `json:"prefix"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Scopes      []string   `json:"scopes"`
	RatePerMin  int        `json:"rate_per_min"`
	DailyQuota  int        `json:"daily_quota"`
	DomainAllow []string   `json:"domain_allow"`
	CreatedAt   time.Time  `json:"created_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
}

// outputListText outputs the keys in human-readable text format.
func outputListText(keys []*domain.APIKey, writer io.Writer) {
	if len(keys) == 0 {
		_, _ = fmt.Fprintln(writer, "No API keys found.")
		return
	}

	for _, key := range keys {
		status := "active"
		if key.IsRevoked() {
			status = "revoked"
		}

		_, _ = fmt.Fprintf(writer, "%s  %-8s  %s  %s\n",
			key.Prefix,
			status,
			key.CreatedAt.Format(time.RFC3339),
			key.Name,
		)
		_, _ = fmt.Fprintf(writer, "          type=%s scopes=%s rate=%d/min quota=%d/day domains=%s\n",
			key.Type,
			strings.Join(key.Scopes, ","),
			key.RatePerMin,
			key.DailyQuota,
			strings.Join(key.DomainAllow, ","),
		)
	}
}

// outputListJSON outputs the keys in JSON format for machine consumption.
func outputListJSON(keys []*domain.APIKey, writer io.Writer) {
	listed := make([]listedKey, 0, len(keys))
	for _, key := range keys {
		listed = append(listed, listedKey{
			Prefix:      key.Prefix,
			Name:        key.Name,
			Type:        string(key.Type),
			Scopes:      key.Scopes,
			RatePerMin:  key.RatePerMin,
			DailyQuota:  key.DailyQuota,
			DomainAllow: key.DomainAllow,
			CreatedAt:   key.CreatedAt,
			RevokedAt:   key.RevokedAt,
			LastUsedAt:  key.LastUsedAt,
		})
	}

	jsonBytes, err := json.MarshalIndent(listed, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
