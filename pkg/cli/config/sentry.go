package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// sentryFlushTimeout bounds how long buffered events are sent on exit
const sentryFlushTimeout = 2 * time.Second

type Sentry struct {
	dsn         string
	environment string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Category:    "Sentry",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("INQUIRY_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Category:    "Sentry",
			Value:       "production",
			Destination: &x.environment,
			Sources:     cli.EnvVars("INQUIRY_SENTRY_ENV"),
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("dsn.len", len(x.dsn)),
		slog.String("environment", x.environment),
	)
}

// IsConfigured reports whether a DSN is set
func (x *Sentry) IsConfigured() bool {
	return x.dsn != ""
}

// Configure initializes the global Sentry client and returns a flush func.
// Without a DSN it does nothing.
func (x *Sentry) Configure(release string) (func(), error) {
	if !x.IsConfigured() {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.environment,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}
	logging.Default().Info("Sentry error reporting enabled", "sentry", x)

	return func() {
		sentry.Flush(sentryFlushTimeout)
	}, nil
}
