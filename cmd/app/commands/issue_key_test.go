package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/odiadev/keygate/internal/errors"
	"github.com/odiadev/keygate/internal/keys/domain"
	keysMocks "github.com/odiadev/keygate/internal/keys/http/mocks"
)

func TestRunIssueKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &keysMocks.MockAPIKeyUseCase{}
		output := &domain.IssueKeyOutput{
			PlainKey: "pk_live_abc12345_tailxxxxxxxxxxxxxxxxxxxxxxxx",
			Prefix:   "abc12345",
		}

		mockUseCase.On("Issue", ctx, mock.MatchedBy(func(input *domain.IssueKeyInput) bool {
			return input.Name == "Test" &&
				input.Type == domain.KeyTypePublic &&
				input.CreatedBy == "cli"
		})).Return(output, nil)

		var out bytes.Buffer

		err := RunIssueKey(ctx, mockUseCase, logger, &out, "Test", "pk", "", 0, 0, "", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), output.PlainKey)
		require.Contains(t, out.String(), output.Prefix)
		require.Contains(t, out.String(), "shown only once")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output-with-domains", func(t *testing.T) {
		mockUseCase := &keysMocks.MockAPIKeyUseCase{}
		output := &domain.IssueKeyOutput{
			PlainKey: "sk_live_bcd23456_tailxxxxxxxxxxxxxxxxxxxxxxxx",
			Prefix:   "bcd23456",
		}

		mockUseCase.On("Issue", ctx, mock.MatchedBy(func(input *domain.IssueKeyInput) bool {
			return input.Type == domain.KeyTypeSecret &&
				len(input.DomainAllow) == 2 &&
				input.DomainAllow[0] == "odia.dev" &&
				input.DomainAllow[1] == "example.com" &&
				input.RatePerMin == 10
		})).Return(output, nil)

		var out bytes.Buffer

		err := RunIssueKey(
			ctx, mockUseCase, logger, &out,
			"Test", "sk", "tts:read", 10, 500, "odia.dev, example.com", "json",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), output.PlainKey)
		require.Contains(t, out.String(), "{") // Should be JSON
		mockUseCase.AssertExpectations(t)
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &keysMocks.MockAPIKeyUseCase{}
		mockUseCase.On("Issue", ctx, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name must not be blank"))

		var out bytes.Buffer

		err := RunIssueKey(ctx, mockUseCase, logger, &out, "  ", "pk", "", 0, 0, "", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to issue api key")
	})
}
