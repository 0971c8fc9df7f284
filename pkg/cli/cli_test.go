package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/cli"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

const scheduleCriteria = `
[[filter]]
id = "1"
field = "Item"
comparison_operator = "equals"
value = "ITM001"
active = true

[order_types]
planned = true
firmed = true
shipped = true

[time_period]
past_weeks = 2
future_weeks = 4

[report_options]
report_by = "weekly"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func run(args ...string) error {
	return cli.Run(context.Background(), append([]string{"inquiry", "--log-output", "stderr"}, args...), "test")
}

func TestRun_ValidateCommand(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeFile(t, "config.toml", `
[report]
url = "/ReportsNET/ReportCreator/Waiting.aspx"

[[field]]
id = "ProductionResource"
  [[field.static]]
  id = "PR01"
  name = "Line 1"
`)
		gt.NoError(t, run("validate", "--config", path))
	})

	t.Run("invalid config", func(t *testing.T) {
		path := writeFile(t, "config.toml", `
[[field]]
id = "Item"
  [[field.static]]
  id = "ITM001"
  name = "Item 1"
`)
		gt.Error(t, run("validate", "--config", path)).Is(config.ErrInvalidFieldID)
	})

	t.Run("no config uses defaults", func(t *testing.T) {
		gt.NoError(t, run("validate"))
	})
}

func TestRun_SearchCommand(t *testing.T) {
	t.Run("po items with export", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", `item_number = "ITM00"`)
		dir := t.TempDir()
		out := filepath.Join(dir, "result.json")
		export := filepath.Join(dir, "result.xlsx")

		gt.NoError(t, run("search",
			"--screen", "po-items",
			"--criteria", criteria,
			"--gateway-backend", "mock",
			"--page-size", "10",
			"--output", out,
			"--export", export,
		)).Required()

		data, err := os.ReadFile(out)
		gt.NoError(t, err).Required()
		var res struct {
			Total int               `json:"total"`
			Rows  []json.RawMessage `json:"rows"`
		}
		gt.NoError(t, json.Unmarshal(data, &res)).Required()
		gt.Value(t, res.Total).Equal(9)
		gt.A(t, res.Rows).Length(9)

		xlsx, err := os.ReadFile(export)
		gt.NoError(t, err).Required()
		gt.Value(t, string(xlsx[:2])).Equal("PK")
	})

	t.Run("production schedule csv export", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", scheduleCriteria)
		dir := t.TempDir()
		export := filepath.Join(dir, "schedule.csv")

		gt.NoError(t, run("search",
			"--screen", "production-schedule",
			"--criteria", criteria,
			"--gateway-backend", "mock",
			"--output", filepath.Join(dir, "result.json"),
			"--export", export,
		)).Required()

		csv, err := os.ReadFile(export)
		gt.NoError(t, err).Required()
		gt.String(t, string(csv)).Contains("ITM001")
	})

	t.Run("invalid criteria", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", `
[time_period]
past_weeks = 100
`)
		err := run("search",
			"--screen", "production-schedule",
			"--criteria", criteria,
			"--gateway-backend", "mock",
			"--output", filepath.Join(t.TempDir(), "result.json"),
		)
		gt.Error(t, err).Is(model.ErrInvalidCriteria)
	})

	t.Run("unknown screen", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", ``)
		err := run("search", "--screen", "orders", "--criteria", criteria, "--gateway-backend", "mock")
		gt.Error(t, err).Is(model.ErrUnknownScreen)
	})
}

func TestRun_ReportCommand(t *testing.T) {
	t.Run("valid criteria are encoded", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", scheduleCriteria)
		out := filepath.Join(t.TempDir(), "report.json")

		gt.NoError(t, run("report", "--criteria", criteria, "--output", out)).Required()

		data, err := os.ReadFile(out)
		gt.NoError(t, err).Required()
		var obj model.ReportObject
		gt.NoError(t, json.Unmarshal(data, &obj)).Required()
		gt.Value(t, obj.XMLStyleSheet).Equal(model.ReportXMLStyleSheet)
		gt.String(t, obj.Params).Contains("ITM001|")
	})

	t.Run("submit records the request", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", scheduleCriteria)
		out := filepath.Join(t.TempDir(), "report.json")

		gt.NoError(t, run("report", "--criteria", criteria, "--submit",
			"--repository-backend", "memory", "--user", "planner1", "--output", out)).Required()

		data, err := os.ReadFile(out)
		gt.NoError(t, err).Required()
		var req model.ReportRequest
		gt.NoError(t, json.Unmarshal(data, &req)).Required()
		gt.Value(t, req.User).Equal("planner1")
		gt.String(t, req.ID.String()).NotEqual("")
	})

	t.Run("invalid criteria fail", func(t *testing.T) {
		criteria := writeFile(t, "criteria.toml", `
[time_period]
future_weeks = 60
`)
		err := run("report", "--criteria", criteria)
		gt.Error(t, err).Is(model.ErrInvalidCriteria)
	})
}

func TestRun_FiltersCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "filters.json")
	gt.NoError(t, run("filters", "--screen", "pos-paid", "--gateway-backend", "mock", "--output", out)).Required()

	data, err := os.ReadFile(out)
	gt.NoError(t, err).Required()
	var sets []*model.FilterValueSet
	gt.NoError(t, json.Unmarshal(data, &sets)).Required()
	gt.A(t, sets).Length(3)
}

func TestPrintFilterSets_ColouredHeadersKeepColumnsAligned(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	sets := []*model.FilterValueSet{
		{
			Field: types.FieldVendor,
			Values: []model.FilterValue{
				{FieldID: types.FieldVendor, FilterID: "V1", FilterDesc: "Short"},
				{FieldID: types.FieldVendor, FilterID: "V100000", FilterDesc: "Long"},
			},
		},
		{
			Field:    types.FieldWarehouse,
			Degraded: true,
			Values: []model.FilterValue{
				{FieldID: types.FieldWarehouse, FilterID: "W1", FilterDesc: "Main"},
			},
		},
	}

	var buf bytes.Buffer
	gt.NoError(t, cli.PrintFilterSets(&buf, sets)).Required()

	gt.String(t, buf.String()).Contains("\x1b[")

	plain := regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(buf.String(), "")
	lines := strings.Split(strings.TrimRight(plain, "\n"), "\n")
	gt.A(t, lines).Length(5)
	gt.Value(t, lines[0]).Equal("Vendor (2)")
	gt.String(t, lines[3]).Contains("[fallback]")
	gt.Value(t, lines[1]).Equal("  V1       Short")
	gt.Value(t, lines[2]).Equal("  V100000  Long")
}
