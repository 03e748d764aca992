package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/odiadev/keygate/cmd/app/commands"
	"github.com/odiadev/keygate/internal/app"
	"github.com/odiadev/keygate/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-key",
			Usage: "Issue a new API key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable key name",
				},
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "pk",
					Usage:   "Key type: 'pk' (publishable) or 'sk' (secret)",
				},
				&cli.StringFlag{
					Name:    "scopes",
					Aliases: []string{"s"},
					Usage:   "Comma-separated scopes (defaults to tts:read)",
				},
				&cli.IntFlag{
					Name:    "rate-per-min",
					Aliases: []string{"r"},
					Usage:   "Requests per minute allowance (defaults to 60)",
				},
				&cli.IntFlag{
					Name:    "daily-quota",
					Aliases: []string{"q"},
					Usage:   "Daily request allowance (defaults to 2000)",
				},
				&cli.StringFlag{
					Name:    "domains",
					Aliases: []string{"d"},
					Usage:   "Comma-separated allowed origin domains (empty allows all)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				apiKeyUseCase, err := container.APIKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueKey(
					ctx,
					apiKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("type"),
					cmd.String("scopes"),
					int(cmd.Int("rate-per-min")),
					int(cmd.Int("daily-quota")),
					cmd.String("domains"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-key",
			Usage: "Revoke an API key by prefix",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "prefix",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "The key's 8-character prefix",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				apiKeyUseCase, err := container.APIKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeKey(
					ctx,
					apiKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("prefix"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-keys",
			Usage: "List issued API keys, newest first",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "offset",
					Aliases: []string{"o"},
					Value:   0,
					Usage:   "Number of keys to skip",
				},
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Value:   50,
					Usage:   "Maximum number of keys to return",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				apiKeyUseCase, err := container.APIKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunListKeys(
					ctx,
					apiKeyUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("offset")),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
	}
}
