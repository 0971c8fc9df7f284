package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/repository/memory"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cliSession scopes the one-shot search and its export
const cliSession = "cli"

func cmdSearch() *cli.Command {
	var screen string
	var criteriaPath string
	var output string
	var exportPath string
	var format string
	var page model.Page
	var appCfg config.App
	var gatewayCfg config.Gateway

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "screen",
			Usage:       "Screen to search [po-items|production-schedule|pos-paid]",
			Required:    true,
			Destination: &screen,
		},
		&cli.StringFlag{
			Name:        "criteria",
			Usage:       "Search criteria file (TOML)",
			Required:    true,
			Destination: &criteriaPath,
		},
		&cli.IntFlag{
			Name:        "page",
			Usage:       "Page number (1-based)",
			Value:       1,
			Destination: &page.Page,
		},
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "Rows per page (unsupported sizes use the screen default)",
			Destination: &page.PageSize,
		},
		&cli.StringFlag{
			Name:        "sort-by",
			Usage:       "Column to sort by",
			Destination: &page.SortBy,
		},
		&cli.BoolFlag{
			Name:        "desc",
			Usage:       "Sort descending",
			Destination: &page.Desc,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the result page as JSON to this file (- for stdout)",
			Value:       "-",
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "export",
			Usage:       "Also export the full result to this file",
			Destination: &exportPath,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Export format [csv|xlsx] (default depends on the screen)",
			Destination: &format,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, gatewayCfg.Flags()...)

	return &cli.Command{
		Name:  "search",
		Usage: "Run one search from a criteria file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			scr, err := types.ParseScreen(screen)
			if err != nil {
				return goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V("screen", screen))
			}

			schema, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}
			gw, err := gatewayCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure gateway")
			}
			uc := usecase.New(gw, memory.New(), usecase.WithSchema(schema))

			res, err := runSearch(ctx, uc.Search, scr, criteriaPath, page)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(output, c.Root().Writer)
			if err != nil {
				return err
			}
			if err := writeJSON(w, res); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return goerr.Wrap(err, "failed to close output file")
			}

			if exportPath == "" {
				return nil
			}
			file, err := uc.Export.Render(ctx, cliSession, scr, types.ExportFormat(format))
			if err != nil {
				return goerr.Wrap(err, "failed to render export")
			}
			if err := os.WriteFile(exportPath, file.Data, 0o600); err != nil {
				return goerr.Wrap(err, "failed to write export file", goerr.V("path", exportPath))
			}
			logging.Default().Info("Export written",
				"path", exportPath,
				"format", file.Format,
				"rows", file.Rows,
			)
			return nil
		},
	}
}

// runSearch loads the criteria of the screen and runs its search
func runSearch(ctx context.Context, uc *usecase.SearchUseCase, screen types.Screen, path string, page model.Page) (any, error) {
	switch screen {
	case types.ScreenPOItems:
		var crit model.POItemCriteria
		if err := loadCriteria(path, &crit); err != nil {
			return nil, err
		}
		return uc.SearchPOItems(ctx, cliSession, &crit, page)

	case types.ScreenProductionSchedule:
		var crit model.ProductionSchedCriteria
		if err := loadCriteria(path, &crit); err != nil {
			return nil, err
		}
		return uc.SearchProductionSchedule(ctx, cliSession, &crit, page)

	case types.ScreenPOsPaid:
		var crit model.POsPaidCriteria
		if err := loadCriteria(path, &crit); err != nil {
			return nil, err
		}
		return uc.SearchPOsPaid(ctx, cliSession, &crit, page)

	default:
		return nil, goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V("screen", screen))
	}
}
