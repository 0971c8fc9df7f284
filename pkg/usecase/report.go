package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/model/config"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

// Report generator defaults
const (
	DefaultReportURL             = "/ReportsNET/ReportCreator/ReportCreatorNETWaiting.aspx?Transfer=1"
	DefaultReportEnvironmentCode = "AFI"
	DefaultReportVHSName         = "AFI"
	DefaultReportUser            = "system"
)

// ReportUseCase encodes production schedule criteria for the legacy
// report generator and records submissions
type ReportUseCase struct {
	repo     interfaces.Repository
	settings config.ReportSettings
	now      func() time.Time
}

// NewReportUseCase creates a ReportUseCase. Empty settings fall back to the
// generator defaults.
func NewReportUseCase(repo interfaces.Repository, settings config.ReportSettings) *ReportUseCase {
	if settings.URL == "" {
		settings.URL = DefaultReportURL
	}
	if settings.EnvironmentCode == "" {
		settings.EnvironmentCode = DefaultReportEnvironmentCode
	}
	if settings.VHSName == "" {
		settings.VHSName = DefaultReportVHSName
	}
	if settings.User == "" {
		settings.User = DefaultReportUser
	}
	return &ReportUseCase{repo: repo, settings: settings, now: time.Now}
}

// Validate returns every reason the criteria cannot be submitted
func (uc *ReportUseCase) Validate(c *model.ProductionSchedCriteria) error {
	return c.Validate()
}

// BuildUserCriteria renders the human readable criteria line
func (uc *ReportUseCase) BuildUserCriteria(c *model.ProductionSchedCriteria) string {
	return c.Summary()
}

// BuildReportParameters renders the positional parameter string
func (uc *ReportUseCase) BuildReportParameters(c *model.ProductionSchedCriteria) string {
	return c.ReportParameters(uc.settings.VHSName, uc.settings.User)
}

// GenerateReportObject builds the generator payload
func (uc *ReportUseCase) GenerateReportObject(c *model.ProductionSchedCriteria) *model.ReportObject {
	return model.NewReportObject(c, uc.settings.EnvironmentCode, uc.settings.VHSName, uc.settings.User)
}

// Submit validates the criteria, records the request, and returns it with
// the generator URL. Nothing is recorded when validation fails.
func (uc *ReportUseCase) Submit(ctx context.Context, c *model.ProductionSchedCriteria, user string) (*model.ReportRequest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reportType := c.ReportType
	if reportType == "" {
		reportType = types.ReportTypeBrowser
	}
	if user == "" {
		user = uc.settings.User
	}

	req := &model.ReportRequest{
		ID:         model.NewReportRequestID(),
		Screen:     types.ScreenProductionSchedule,
		ReportType: reportType,
		Object:     *uc.GenerateReportObject(c),
		User:       user,
		URL:        uc.settings.URL,
		CreatedAt:  uc.now(),
	}

	if err := uc.repo.Report().Put(ctx, req); err != nil {
		return nil, goerr.Wrap(err, "failed to save report request", goerr.V("report_id", req.ID))
	}

	logging.From(ctx).Info("report submitted",
		slog.String("report_id", req.ID.String()),
		slog.String("report_type", reportType.String()),
	)
	return req, nil
}

// Get returns a recorded report request
func (uc *ReportUseCase) Get(ctx context.Context, id model.ReportRequestID) (*model.ReportRequest, error) {
	req, err := uc.repo.Report().Get(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(ErrReportNotFound, "report request not found", goerr.V("report_id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get report request", goerr.V("report_id", id))
	}
	return req, nil
}

// List returns recent report requests of a screen, newest first
func (uc *ReportUseCase) List(ctx context.Context, screen types.Screen, limit int) ([]*model.ReportRequest, error) {
	if !screen.IsValid() {
		return nil, goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V(ScreenKey, screen))
	}
	reqs, err := uc.repo.Report().List(ctx, screen, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list report requests", goerr.V(ScreenKey, screen))
	}
	return reqs, nil
}
