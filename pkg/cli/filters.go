package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/repository/memory"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFilters() *cli.Command {
	var screen string
	var output string
	var appCfg config.App
	var gatewayCfg config.Gateway

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "screen",
			Usage:       "Screen whose dropdowns are resolved [po-items|production-schedule|pos-paid]",
			Required:    true,
			Destination: &screen,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the value sets as JSON to this file instead of a table",
			Destination: &output,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, gatewayCfg.Flags()...)

	return &cli.Command{
		Name:  "filters",
		Usage: "Print the dropdown values of a screen",
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
			sets, err := uc.Filter.ScreenValues(ctx, scr)
			if err != nil {
				return err
			}

			if output != "" {
				w, closeOut, err := openOutput(output, c.Root().Writer)
				if err != nil {
					return err
				}
				if err := writeJSON(w, sets); err != nil {
					_ = closeOut()
					return err
				}
				return closeOut()
			}

			return printFilterSets(c.Root().Writer, sets)
		},
	}
}

// printFilterSets writes one table per field. Coloured headers stay out of
// the tabwriter since escape sequences would count as cell width.
func printFilterSets(w io.Writer, sets []*model.FilterValueSet) error {
	for _, set := range sets {
		header := fmt.Sprintf("%s (%d)", set.Field.Desc(), len(set.Values))
		if set.Degraded {
			colorNG.Fprintln(w, header+" [fallback]")
		} else {
			colorLabel.Fprintln(w, header)
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, v := range set.Values {
			fmt.Fprintf(tw, "  %s\t%s\n", v.FilterID, v.FilterDesc)
		}
		if err := tw.Flush(); err != nil {
			return goerr.Wrap(err, "failed to write filter values", goerr.V("field", set.Field))
		}
	}
	return nil
}
