package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

var exportFilePrefix = map[types.Screen]string{
	types.ScreenPOItems:            "PO_Items_Export_",
	types.ScreenProductionSchedule: "Production_Schedule_Export_",
	types.ScreenPOsPaid:            "POs_Paid_Inquiry_",
}

// DefaultExportFormat returns the format each screen exports by default
func DefaultExportFormat(screen types.Screen) types.ExportFormat {
	if screen == types.ScreenProductionSchedule {
		return types.ExportFormatCSV
	}
	return types.ExportFormatXLSX
}

// ExportFileName returns the download name of an export made on date
func ExportFileName(screen types.Screen, format types.ExportFormat, date time.Time) string {
	return exportFilePrefix[screen] + date.Format(model.ISODate) + "." + format.String()
}

// ExportUseCase renders the latest result of a session and screen
type ExportUseCase struct {
	search  *SearchUseCase
	repo    interfaces.Repository
	storage interfaces.ExportStorage
	sharer  interfaces.ExportSharer
	now     func() time.Time
}

// ExportOption configures ExportUseCase
type ExportOption func(*ExportUseCase)

// WithExportStorage enables archiving exports
func WithExportStorage(s interfaces.ExportStorage) ExportOption {
	return func(uc *ExportUseCase) {
		uc.storage = s
	}
}

// WithExportSharer enables sharing exports
func WithExportSharer(s interfaces.ExportSharer) ExportOption {
	return func(uc *ExportUseCase) {
		uc.sharer = s
	}
}

// NewExportUseCase creates an ExportUseCase
func NewExportUseCase(search *SearchUseCase, repo interfaces.Repository, opts ...ExportOption) *ExportUseCase {
	uc := &ExportUseCase{
		search: search,
		repo:   repo,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ArchiveEnabled reports whether Archive can be used
func (uc *ExportUseCase) ArchiveEnabled() bool {
	return uc.storage != nil
}

// ShareEnabled reports whether Share can be used
func (uc *ExportUseCase) ShareEnabled() bool {
	return uc.sharer != nil
}

// Render renders the latest result of the session and screen. An empty
// format selects the screen default.
func (uc *ExportUseCase) Render(ctx context.Context, session string, screen types.Screen, format types.ExportFormat) (*model.ExportFile, error) {
	if !screen.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V(ScreenKey, screen))
	}
	if format == "" {
		format = DefaultExportFormat(screen)
	}
	if !format.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidCriteria, "invalid export format", goerr.V(FormatKey, format))
	}

	res, err := uc.search.LastResult(session, screen)
	if err != nil {
		return nil, err
	}
	return RenderExport(res, format, uc.now())
}

// RenderExport renders a stored result in the given format
func RenderExport(res *StoredResult, format types.ExportFormat, now time.Time) (*model.ExportFile, error) {
	table := newExportTable(res)
	exportedAt := now.Format(time.RFC3339)

	var (
		data []byte
		err  error
	)
	switch format {
	case types.ExportFormatCSV:
		data, err = renderCSV(table, exportedAt)
	case types.ExportFormatXLSX:
		data, err = renderXLSX(table, exportedAt)
	default:
		return nil, goerr.Wrap(model.ErrInvalidCriteria, "invalid export format", goerr.V(FormatKey, format))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render export",
			goerr.V(ScreenKey, res.Screen), goerr.V(FormatKey, format))
	}

	return &model.ExportFile{
		Screen:   res.Screen,
		Format:   format,
		FileName: ExportFileName(res.Screen, format, now),
		Rows:     res.Rows(),
		Data:     data,
	}, nil
}

// Archive uploads the rendered export to storage and records it
func (uc *ExportUseCase) Archive(ctx context.Context, session string, screen types.Screen, format types.ExportFormat) (*model.ExportRecord, error) {
	if uc.storage == nil {
		return nil, goerr.Wrap(ErrArchiveDisabled, "archive is not available", goerr.V(ScreenKey, screen))
	}
	file, err := uc.Render(ctx, session, screen, format)
	if err != nil {
		return nil, err
	}

	location, err := uc.storage.Put(ctx, file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to archive export", goerr.V("file_name", file.FileName))
	}

	rec := uc.newRecord(file)
	rec.Location = location
	if err := uc.repo.Export().Put(ctx, rec); err != nil {
		return nil, goerr.Wrap(err, "failed to save export record", goerr.V("export_id", rec.ID))
	}

	logging.From(ctx).Info("export archived",
		slog.String("export_id", rec.ID.String()),
		slog.String("location", location),
		slog.Int("rows", rec.Rows),
	)
	return rec, nil
}

// Share posts the rendered export to the configured channel and records it
func (uc *ExportUseCase) Share(ctx context.Context, session string, screen types.Screen, format types.ExportFormat, comment string) (*model.ExportRecord, error) {
	if uc.sharer == nil {
		return nil, goerr.Wrap(ErrShareDisabled, "share is not available", goerr.V(ScreenKey, screen))
	}
	file, err := uc.Render(ctx, session, screen, format)
	if err != nil {
		return nil, err
	}

	if comment == "" {
		comment = screen.Title() + " export (" + file.FileName + ")"
	}
	channel, err := uc.sharer.Share(ctx, file, comment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to share export", goerr.V("file_name", file.FileName))
	}

	rec := uc.newRecord(file)
	rec.SharedTo = channel
	if err := uc.repo.Export().Put(ctx, rec); err != nil {
		return nil, goerr.Wrap(err, "failed to save export record", goerr.V("export_id", rec.ID))
	}

	logging.From(ctx).Info("export shared",
		slog.String("export_id", rec.ID.String()),
		slog.String("channel", channel),
	)
	return rec, nil
}

// List returns recent export records of a screen, newest first
func (uc *ExportUseCase) List(ctx context.Context, screen types.Screen, limit int) ([]*model.ExportRecord, error) {
	if !screen.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V(ScreenKey, screen))
	}
	recs, err := uc.repo.Export().List(ctx, screen, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list export records", goerr.V(ScreenKey, screen))
	}
	return recs, nil
}

func (uc *ExportUseCase) newRecord(file *model.ExportFile) *model.ExportRecord {
	return &model.ExportRecord{
		ID:        model.NewExportRecordID(),
		Screen:    file.Screen,
		Format:    file.Format,
		FileName:  file.FileName,
		Rows:      file.Rows,
		CreatedAt: uc.now(),
	}
}
