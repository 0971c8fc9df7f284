package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/service/gateway"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Gateway holds CLI flags for the search and lookup gateway
type Gateway struct {
	backend       string
	baseURL       string
	environment   string
	vhsName       string
	user          string
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
}

func (x *Gateway) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gateway-backend",
			Usage:       "Gateway backend [http|mock]",
			Category:    "Gateway",
			Value:       "http",
			Destination: &x.backend,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_BACKEND"),
		},
		&cli.StringFlag{
			Name:        "gateway-url",
			Usage:       "Base URL of the inquiry gateway",
			Category:    "Gateway",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_URL"),
		},
		&cli.StringFlag{
			Name:        "gateway-environment",
			Usage:       "Environment code sent with every gateway call",
			Category:    "Gateway",
			Value:       "PROD",
			Destination: &x.environment,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_ENVIRONMENT"),
		},
		&cli.StringFlag{
			Name:        "gateway-vhs-name",
			Usage:       "VHS name used by the lookups that need one",
			Category:    "Gateway",
			Value:       "AFI",
			Destination: &x.vhsName,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_VHS_NAME"),
		},
		&cli.StringFlag{
			Name:        "gateway-user",
			Usage:       "User name sent with search requests",
			Category:    "Gateway",
			Destination: &x.user,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_USER"),
		},
		&cli.DurationFlag{
			Name:        "gateway-timeout",
			Usage:       "Timeout of a single gateway request",
			Category:    "Gateway",
			Value:       10 * time.Second,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "gateway-retry",
			Usage:       "Attempts for idempotent gateway lookups (1 disables retry)",
			Category:    "Gateway",
			Value:       1,
			Destination: &x.retryAttempts,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_RETRY"),
		},
		&cli.DurationFlag{
			Name:        "gateway-retry-delay",
			Usage:       "Initial delay between lookup attempts",
			Category:    "Gateway",
			Value:       200 * time.Millisecond,
			Destination: &x.retryDelay,
			Sources:     cli.EnvVars("INQUIRY_GATEWAY_RETRY_DELAY"),
		},
	}
}

func (x Gateway) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("url", x.baseURL),
		slog.String("environment", x.environment),
		slog.Duration("timeout", x.timeout),
		slog.Int("retry", x.retryAttempts),
	)
}

// Configure builds the gateway selected by --gateway-backend
func (x *Gateway) Configure() (interfaces.Gateway, error) {
	switch x.backend {
	case "mock":
		logging.Default().Warn("Using mock gateway with fixture data")
		return gateway.NewMock(), nil

	case "http", "":
		if x.baseURL == "" {
			return nil, goerr.Wrap(ErrMissingSetting, "gateway-url is required for the http backend",
				goerr.V(SettingKey, "gateway-url"))
		}
		opts := []gateway.Option{
			gateway.WithEnvironment(x.environment),
			gateway.WithVHSName(x.vhsName),
			gateway.WithUser(x.user),
			gateway.WithTimeout(x.timeout),
		}
		if x.retryAttempts > 1 {
			opts = append(opts, gateway.WithRetry(uint(x.retryAttempts), x.retryDelay))
		}
		client, err := gateway.New(x.baseURL, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create gateway client")
		}
		logging.Default().Info("Using gateway", "gateway", x)
		return client, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown gateway backend", goerr.V(BackendKey, x.backend))
	}
}
