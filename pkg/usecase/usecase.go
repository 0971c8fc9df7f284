package usecase

import (
	"time"

	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
	"github.com/secmon-lab/inquiry/pkg/domain/model/config"
)

type UseCases struct {
	gateway interfaces.Gateway
	repo    interfaces.Repository
	schema  *config.FilterSchema
	cache   *FilterCache
	storage interfaces.ExportStorage
	sharer  interfaces.ExportSharer
	retain  time.Duration
	Filter  *FilterUseCase
	Search  *SearchUseCase
	Report  *ReportUseCase
	Export  *ExportUseCase
}

type Option func(*UseCases)

func WithSchema(schema *config.FilterSchema) Option {
	return func(uc *UseCases) {
		uc.schema = schema
	}
}

func WithCache(cache *FilterCache) Option {
	return func(uc *UseCases) {
		uc.cache = cache
	}
}

func WithStorage(storage interfaces.ExportStorage) Option {
	return func(uc *UseCases) {
		uc.storage = storage
	}
}

func WithSharer(sharer interfaces.ExportSharer) Option {
	return func(uc *UseCases) {
		uc.sharer = sharer
	}
}

// WithSearchRetention sets how long search results stay available for export
func WithSearchRetention(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.retain = d
	}
}

func New(gw interfaces.Gateway, repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		gateway: gw,
		repo:    repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	var filterOpts []FilterOption
	if uc.cache != nil {
		filterOpts = append(filterOpts, WithFilterCache(uc.cache))
	}
	if uc.schema != nil {
		filterOpts = append(filterOpts, WithFilterSchema(uc.schema))
	}

	var exportOpts []ExportOption
	if uc.storage != nil {
		exportOpts = append(exportOpts, WithExportStorage(uc.storage))
	}
	if uc.sharer != nil {
		exportOpts = append(exportOpts, WithExportSharer(uc.sharer))
	}

	var report config.ReportSettings
	if uc.schema != nil {
		report = uc.schema.Report
	}

	uc.Filter = NewFilterUseCase(gw, filterOpts...)
	uc.Search = NewSearchUseCase(gw, WithResultRetention(uc.retain))
	uc.Report = NewReportUseCase(repo, report)
	uc.Export = NewExportUseCase(uc.Search, repo, exportOpts...)

	return uc
}
