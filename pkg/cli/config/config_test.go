package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	domainConfig "github.com/secmon-lab/inquiry/pkg/domain/model/config"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid configuration",
			content: `
[report]
url = "https://reports.example.com/ReportCreator.aspx"
environment_code = "AFI"

[[field]]
id = "ProductionResource"

  [[field.static]]
  id = "ALL"
  name = "ALL Production Resource"

  [[field.static]]
  id = "PR01"
  name = "Line 1"

[[field]]
id = "Vendor"

  [[field.fallback]]
  id = "V100"
  name = "Northwind Timber"
`,
		},
		{
			name:    "empty file",
			content: "",
		},
		{
			name:    "broken TOML",
			content: `[[field]`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "unknown field",
			content: `
[[field]]
id = "Color"
  [[field.static]]
  id = "red"
  name = "Red"
`,
			wantErr: config.ErrInvalidFieldID,
		},
		{
			name: "free text field cannot have options",
			content: `
[[field]]
id = "Item"
  [[field.static]]
  id = "ITM001"
  name = "Item 1"
`,
			wantErr: config.ErrInvalidFieldID,
		},
		{
			name: "field without options",
			content: `
[[field]]
id = "Vendor"
`,
			wantErr: config.ErrMissingOptions,
		},
		{
			name: "duplicate field",
			content: `
[[field]]
id = "Vendor"
  [[field.fallback]]
  id = "V100"
  name = "Northwind"

[[field]]
id = "Vendor"
  [[field.fallback]]
  id = "V200"
  name = "Pacific"
`,
			wantErr: config.ErrDuplicateFieldID,
		},
		{
			name: "duplicate option",
			content: `
[[field]]
id = "Warehouse"
  [[field.fallback]]
  id = "HOM"
  name = "Home"
  [[field.fallback]]
  id = "HOM"
  name = "Home again"
`,
			wantErr: config.ErrDuplicateOptionID,
		},
		{
			name: "option without name",
			content: `
[[field]]
id = "Warehouse"
  [[field.fallback]]
  id = "HOM"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "relative report URL",
			content: `
[report]
url = "reports/creator.aspx"
`,
			wantErr: config.ErrInvalidReportURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadAppConfiguration(writeConfig(t, tt.content))

			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}

			gt.NoError(t, err).Required()
			gt.Value(t, cfg).NotNil()
		})
	}
}

func TestLoadAppConfiguration_NotFound(t *testing.T) {
	_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestAppConfig_ToFilterSchema(t *testing.T) {
	path := writeConfig(t, `
[report]
url = "/ReportsNET/ReportCreator/Waiting.aspx"
vhs_name = "AFC"
user = "planner"

[[field]]
id = "ProductionResource"
  [[field.static]]
  id = "PR01"
  name = "Line 1"

[[field]]
id = "POStatus"
  [[field.fallback]]
  id = "10"
  name = "Open"
`)

	cfg, err := config.LoadAppConfiguration(path)
	gt.NoError(t, err).Required()

	schema := cfg.ToFilterSchema()
	gt.Value(t, schema.Report).Equal(domainConfig.ReportSettings{
		URL:     "/ReportsNET/ReportCreator/Waiting.aspx",
		VHSName: "AFC",
		User:    "planner",
	})

	pr := schema.Field(types.FieldProductionResource)
	gt.Value(t, pr).NotNil().Required()
	gt.Value(t, pr.Static).Equal([]domainConfig.FieldOption{{ID: "PR01", Name: "Line 1"}})
	gt.Value(t, pr.Fallback).Nil()

	status := schema.Field(types.FieldPOStatus)
	gt.Value(t, status).NotNil().Required()
	gt.A(t, status.Fallback).Length(1)

	gt.Value(t, schema.Field(types.FieldVendor)).Nil()
}

func TestApp_Configure(t *testing.T) {
	t.Run("no path yields empty schema", func(t *testing.T) {
		schema, err := config.NewAppForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.A(t, schema.Fields).Length(0)
	})

	t.Run("path is loaded", func(t *testing.T) {
		path := writeConfig(t, `
[[field]]
id = "Office"
  [[field.fallback]]
  id = "NY"
  name = "New York"
`)
		schema, err := config.NewAppForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.A(t, schema.Fields).Length(1)
	})

	t.Run("invalid file fails", func(t *testing.T) {
		_, err := config.NewAppForTest(filepath.Join(t.TempDir(), "none.toml")).Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}
