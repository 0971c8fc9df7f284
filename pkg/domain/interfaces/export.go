package interfaces

import (
	"context"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
)

// ExportStorage archives rendered export files
type ExportStorage interface {
	// Put stores the file and returns its location (e.g. gs://bucket/key)
	Put(ctx context.Context, file *model.ExportFile) (string, error)
}

// ExportSharer posts rendered export files to a chat channel
type ExportSharer interface {
	// Share uploads the file with a comment and returns the channel it went to
	Share(ctx context.Context, file *model.ExportFile, comment string) (string, error)
}
