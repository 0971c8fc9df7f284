package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// ErrNotFound is returned by repositories for missing documents
var ErrNotFound = goerr.New("not found")

// Repository defines the interface for data persistence
type Repository interface {
	Report() ReportRepository
	Export() ExportRepository
	Close() error
}

// ReportRepository persists report submissions
type ReportRepository interface {
	// Put saves a report request (upsert by ID)
	Put(ctx context.Context, req *model.ReportRequest) error

	// Get returns a report request, or ErrNotFound
	Get(ctx context.Context, id model.ReportRequestID) (*model.ReportRequest, error)

	// List returns requests of a screen, newest first. limit <= 0 means no limit.
	List(ctx context.Context, screen types.Screen, limit int) ([]*model.ReportRequest, error)
}

// ExportRepository persists archived and shared exports
type ExportRepository interface {
	// Put saves an export record (upsert by ID)
	Put(ctx context.Context, rec *model.ExportRecord) error

	// List returns records of a screen, newest first. limit <= 0 means no limit.
	List(ctx context.Context, screen types.Screen, limit int) ([]*model.ExportRecord, error)
}
