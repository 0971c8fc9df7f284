package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the application config file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if err := usecase.ValidateSchemas(); err != nil {
				return goerr.Wrap(err, "built-in lookup schemas are inconsistent")
			}

			schema, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"field_count", len(schema.Fields),
				"report_url", schema.Report.URL,
			)
			for _, f := range schema.Fields {
				logger.Info("Field validated",
					"id", f.ID,
					"static", len(f.Static),
					"fallback", len(f.Fallback),
				)
			}
			return nil
		},
	}
}
