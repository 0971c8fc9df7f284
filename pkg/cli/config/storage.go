package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/service/storage"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the export archive bucket
type Storage struct {
	bucket string
	prefix string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-bucket",
			Usage:       "Cloud Storage bucket for archived exports (archive disabled when empty)",
			Category:    "Export",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("INQUIRY_EXPORT_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "export-prefix",
			Usage:       "Object name prefix of archived exports",
			Category:    "Export",
			Value:       "exports",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("INQUIRY_EXPORT_PREFIX"),
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// IsConfigured reports whether a bucket is set
func (x *Storage) IsConfigured() bool {
	return x.bucket != ""
}

// Configure creates the archive client. It returns nil when no bucket is
// configured; the caller closes a non-nil client.
func (x *Storage) Configure(ctx context.Context) (*storage.Client, error) {
	if !x.IsConfigured() {
		logging.Default().Info("Export bucket not configured, archive disabled")
		return nil, nil
	}
	client, err := storage.New(ctx, x.bucket, storage.WithPrefix(x.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", x.bucket))
	}
	logging.Default().Info("Export archive enabled", "storage", x)
	return client, nil
}
