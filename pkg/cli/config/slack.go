package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/service/slack"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken  string
	channelID string
	cacheTTL  time.Duration
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for sharing exports)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("INQUIRY_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID that receives shared exports",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("INQUIRY_SLACK_CHANNEL_ID"),
		},
		&cli.DurationFlag{
			Name:        "slack-channel-cache-ttl",
			Usage:       "How long channel names are cached",
			Category:    "Slack",
			Value:       slack.DefaultCacheTTL,
			Destination: &x.cacheTTL,
			Sources:     cli.EnvVars("INQUIRY_SLACK_CHANNEL_CACHE_TTL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// IsConfigured checks if Slack sharing can be enabled
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure creates the Slack service. It returns nil when sharing is not
// configured, and an error when only one of token and channel is set.
func (x *Slack) Configure() (slack.Service, error) {
	if x.botToken == "" && x.channelID == "" {
		logging.Default().Info("Slack not configured, export sharing disabled")
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingSetting, "slack-bot-token and slack-channel-id must be set together",
			goerr.V(SettingKey, "slack"))
	}

	var opts []slack.Option
	if x.cacheTTL > 0 {
		opts = append(opts, slack.WithCacheTTL(x.cacheTTL))
	}
	svc, err := slack.New(x.botToken, x.channelID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	logging.Default().Info("Slack export sharing enabled", "slack", x)
	return svc, nil
}
