package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/odiadev/keygate/internal/keys/domain"
	keysUseCase "github.com/odiadev/keygate/internal/keys/usecase"
)

// RunIssueKey issues a new API key and prints the complete token exactly once.
// Omitted parameters fall back to issuance defaults. Outputs in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunIssueKey(
	ctx context.Context,
	apiKeyUseCase keysUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	keyType string,
	scopesCSV string,
	ratePerMin int,
	dailyQuota int,
	domainsCSV string,
	format string,
) error {
	logger.Info("issuing new api key", slog.String("name", name))

	input := &domain.IssueKeyInput{
		Name:        name,
		Type:        domain.KeyType(keyType),
		Scopes:      splitCSV(scopesCSV),
		RatePerMin:  ratePerMin,
		DailyQuota:  dailyQuota,
		DomainAllow: splitCSV(domainsCSV),
		CreatedBy:   "cli",
	}

	output, err := apiKeyUseCase.Issue(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to issue api key: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputIssueJSON(output, writer)
	} else {
		outputIssueText(output, writer)
	}

	logger.Info("api key issued successfully",
		slog.String("prefix", output.Prefix),
		slog.String("name", name),
	)

	return nil
}

// outputIssueText outputs the result in human-readable text format.
func outputIssueText(output *domain.IssueKeyOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nAPI key issued successfully!")
	_, _ = fmt.Fprintf(writer, "Prefix: %s\n", output.Prefix)
	_, _ = fmt.Fprintf(writer, "API key: %s\n", output.PlainKey)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The key is shown only once. Store it securely.")
}

// outputIssueJSON outputs the result in JSON format for machine consumption.
func outputIssueJSON(output *domain.IssueKeyOutput, writer io.Writer) {
	result := map[string]string{
		"prefix":  output.Prefix,
		"api_key": output.PlainKey,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
