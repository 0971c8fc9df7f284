package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/repository/memory"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var (
	colorOK    = color.New(color.FgGreen, color.Bold)
	colorNG    = color.New(color.FgRed, color.Bold)
	colorLabel = color.New(color.FgCyan)
)

func cmdReport() *cli.Command {
	var criteriaPath string
	var output string
	var user string
	var submit bool
	var appCfg config.App
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "criteria",
			Usage:       "Production schedule criteria file (TOML)",
			Required:    true,
			Destination: &criteriaPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the report object as JSON to this file (- for stdout)",
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User recorded on the submitted report",
			Sources:     cli.EnvVars("INQUIRY_REPORT_USER"),
			Destination: &user,
		},
		&cli.BoolFlag{
			Name:        "submit",
			Usage:       "Record the report request in the repository",
			Destination: &submit,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "report",
		Usage: "Validate production schedule criteria and encode the report request",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var crit model.ProductionSchedCriteria
			if err := loadCriteria(criteriaPath, &crit); err != nil {
				return err
			}

			schema, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			var repo interfaces.Repository = memory.New()
			if submit {
				if repo, err = repoCfg.Configure(ctx); err != nil {
					return goerr.Wrap(err, "failed to initialize repository")
				}
			}
			defer func() { _ = repo.Close() }()

			stdout := c.Root().Writer
			reportUC := usecase.NewReportUseCase(repo, schema.Report)
			if err := reportUC.Validate(&crit); err != nil {
				printValidation(stdout, err)
				return err
			}

			obj := reportUC.GenerateReportObject(&crit)
			colorOK.Fprintln(stdout, "✔ criteria are valid")
			colorLabel.Fprint(stdout, "criteria:   ")
			fmt.Fprintln(stdout, reportUC.BuildUserCriteria(&crit))
			colorLabel.Fprint(stdout, "parameters: ")
			fmt.Fprintln(stdout, obj.Params)

			result := any(obj)
			if submit {
				req, err := reportUC.Submit(ctx, &crit, user)
				if err != nil {
					return err
				}
				colorLabel.Fprint(stdout, "submitted:  ")
				fmt.Fprintln(stdout, req.ID)
				result = req
			}

			if output == "" {
				return nil
			}
			w, closeOut, err := openOutput(output, stdout)
			if err != nil {
				return err
			}
			if err := writeJSON(w, result); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}
}

// printValidation lists every validation message
func printValidation(w io.Writer, err error) {
	var verrs model.ValidationErrors
	if !errors.As(err, &verrs) {
		colorNG.Fprintf(w, "✘ %s\n", err.Error())
		return
	}
	colorNG.Fprintf(w, "✘ %d problem(s) found\n", len(verrs))
	for _, msg := range verrs {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}
