package memory

import (
	"github.com/secmon-lab/inquiry/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	report *reportRepository
	export *exportRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		report: newReportRepository(),
		export: newExportRepository(),
	}
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Export() interfaces.ExportRepository {
	return m.export
}

func (m *Memory) Close() error {
	return nil
}
