package slack

import (
	"context"

	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
)

// Service shares rendered exports to a Slack channel
type Service interface {
	interfaces.ExportSharer

	// GetChannelNames retrieves channel names for the given IDs (with caching)
	GetChannelNames(ctx context.Context, ids []string) (map[string]string, error)
}

var _ interfaces.ExportSharer = (Service)(nil)

// Channel represents a Slack channel
type Channel struct {
	ID   string
	Name string
}

// exportTitle is the title shown on an uploaded export
func exportTitle(file *model.ExportFile) string {
	return file.Screen.Title() + " (" + file.FileName + ")"
}
