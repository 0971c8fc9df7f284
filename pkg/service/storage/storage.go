package storage

import (
	"bytes"
	"context"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/utils/safe"
)

// Client archives export files to a Cloud Storage bucket
type Client struct {
	client *storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

var _ interfaces.ExportStorage = &Client{}

// Option configures Client
type Option func(*Client)

// WithPrefix sets the object name prefix, e.g. "inquiry/exports"
func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = prefix
	}
}

// New creates a Cloud Storage client using application default credentials
func New(ctx context.Context, bucket string, opts ...Option) (*Client, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	c := &Client{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Put uploads the file and returns its gs:// location
func (c *Client) Put(ctx context.Context, file *model.ExportFile) (string, error) {
	key := ObjectKey(c.prefix, file, c.now(), uuid.NewString())

	// cancelling the writer context aborts a partial upload
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := c.client.Bucket(c.bucket).Object(key).NewWriter(wctx)
	w.ContentType = file.ContentType()
	w.ContentDisposition = `attachment; filename="` + file.FileName + `"`
	w.Metadata = map[string]string{
		"screen": file.Screen.String(),
		"format": file.Format.String(),
	}

	if _, err := io.Copy(w, bytes.NewReader(file.Data)); err != nil {
		cancel()
		return "", goerr.Wrap(err, "failed to write export object", goerr.V("bucket", c.bucket), goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize export object", goerr.V("bucket", c.bucket), goerr.V("key", key))
	}

	return "gs://" + c.bucket + "/" + key, nil
}

// Close releases the underlying client
func (c *Client) Close(ctx context.Context) {
	safe.Close(ctx, c.client)
}

// ObjectKey lays exports out as <prefix>/<screen>/<yyyy>/<mm>/<dd>/<id>/<file name>
func ObjectKey(prefix string, file *model.ExportFile, at time.Time, id string) string {
	at = at.UTC()
	return path.Join(prefix, file.Screen.String(), at.Format("2006"), at.Format("01"), at.Format("02"), id, file.FileName)
}
