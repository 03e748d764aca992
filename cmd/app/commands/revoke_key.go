package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	keysUseCase "github.com/odiadev/keygate/internal/keys/usecase"
)

// RunRevokeKey revokes the API key with the given prefix. Revoking an already
// revoked key succeeds. Outputs in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeKey(
	ctx context.Context,
	apiKeyUseCase keysUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	prefix string,
	format string,
) error {
	logger.Info("revoking api key", slog.String("prefix", prefix))

	if err := apiKeyUseCase.Revoke(ctx, prefix); err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}

	// Output result based on format
	if format == "json" {
		result := map[string]any{
			"prefix":  prefix,
			"revoked": true,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
			return nil
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "API key %s revoked.\n", prefix)
	}

	logger.Info("api key revoked successfully", slog.String("prefix", prefix))

	return nil
}
