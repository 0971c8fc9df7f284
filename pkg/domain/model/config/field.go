package config

import "github.com/secmon-lab/inquiry/pkg/domain/types"

// FieldOption is one configured option of a filter field
type FieldOption struct {
	ID   string
	Name string
}

// FieldDefinition holds the configured behavior of a filter field.
// Static options replace the gateway lookup entirely; fallback options are
// served (uncached) when the lookup fails.
type FieldDefinition struct {
	ID       types.FieldID
	Static   []FieldOption
	Fallback []FieldOption
}

// ReportSettings configures the legacy report generator hand-off
type ReportSettings struct {
	URL             string
	EnvironmentCode string
	VHSName         string
	User            string
}

// FilterSchema holds the complete application configuration of the
// inquiry screens
type FilterSchema struct {
	Fields []FieldDefinition
	Report ReportSettings
}

// Field returns the definition for id, or nil when it is not configured
func (s *FilterSchema) Field(id types.FieldID) *FieldDefinition {
	if s == nil {
		return nil
	}
	for i := range s.Fields {
		if s.Fields[i].ID == id {
			return &s.Fields[i]
		}
	}
	return nil
}
